package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/wbrown/janus-grimoire/grimoire"
	"github.com/wbrown/janus-grimoire/grimoire/sexp"
	"github.com/wbrown/janus-grimoire/grimoire/storage"
)

var errColor = color.New(color.FgRed)

func main() {
	var dbPath string
	var interactive bool
	var help bool
	var exprStr string

	flag.StringVar(&dbPath, "db", "", "datum store path (opened on demand)")
	flag.BoolVar(&interactive, "i", false, "interactive mode")
	flag.BoolVar(&help, "h", false, "show help")
	flag.StringVar(&exprStr, "e", "", "canonicalize a single expression and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An S-expression reader, canonical printer, and datum store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -e '(#t 12 (34))'       # Print the canonical form\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i                       # Interactive mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i -db datums.db         # Interactive mode with a store\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	var store storage.Store
	if dbPath != "" {
		var err error
		store, err = storage.NewBadgerStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open datum store: %v", err)
		}
		defer store.Close()
	}

	switch {
	case exprStr != "":
		runExpression(exprStr)
	case interactive:
		runInteractive(store)
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// runExpression canonicalizes all datums in a single input and exits
func runExpression(input string) {
	datums, err := sexp.ParseAll(input)
	if err != nil {
		errColor.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}
	for _, d := range datums {
		fmt.Println(sexp.Print(d))
	}
}

func runInteractive(store storage.Store) {
	fmt.Println("=== Grimoire Interactive Mode ===")
	fmt.Println("Commands:")
	fmt.Println("  .help           - Show help")
	fmt.Println("  .exit           - Exit")
	fmt.Println("  .tokens <expr>  - Show the token stream of an expression")
	if store != nil {
		fmt.Println("  .put <expr>     - Store a datum, printing its ID")
		fmt.Println("  .get <id>       - Retrieve a stored datum")
		fmt.Println("  .list           - List stored datums")
	}
	fmt.Println("  <expr>          - Print the canonical form")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":

		case line == ".exit":
			return

		case line == ".help":
			fmt.Println("Enter S-expressions or commands")

		case strings.HasPrefix(line, ".tokens"):
			showTokens(strings.TrimSpace(strings.TrimPrefix(line, ".tokens")))

		case strings.HasPrefix(line, ".put"):
			if store == nil {
				errColor.Println("No datum store open (use -db)")
				continue
			}
			putDatum(store, strings.TrimSpace(strings.TrimPrefix(line, ".put")))

		case strings.HasPrefix(line, ".get"):
			if store == nil {
				errColor.Println("No datum store open (use -db)")
				continue
			}
			getDatum(store, strings.TrimSpace(strings.TrimPrefix(line, ".get")))

		case line == ".list":
			if store == nil {
				errColor.Println("No datum store open (use -db)")
				continue
			}
			listDatums(store)

		case strings.HasPrefix(line, "."):
			fmt.Println("Unknown command. Use .help for help.")

		default:
			datums, err := sexp.ParseAll(line)
			if err != nil {
				errColor.Printf("Parse error: %v\n", err)
				continue
			}
			for _, d := range datums {
				fmt.Println(sexp.Print(d))
			}
		}
	}
}

// showTokens lexes an expression and prints its tokens as a markdown table
func showTokens(input string) {
	lexer := sexp.NewLexer(input)
	if err := lexer.Lex(); err != nil {
		errColor.Printf("Lex error: %v\n", err)
		return
	}

	tableString := &strings.Builder{}

	alignment := []tw.Align{tw.AlignNone, tw.AlignNone, tw.AlignNone}
	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"pos", "token", "text"})

	for _, tok := range lexer.Tokens() {
		pos := fmt.Sprintf("%d:%d", tok.Line, tok.Col)
		desc := tok.String()
		text := tok.Text
		if tok.Type == sexp.TokenString {
			text = fmt.Sprintf("%q", tok.Bytes)
		}
		table.Append([]string{pos, desc, text})
	}

	table.Render()
	fmt.Print(tableString.String())
}

func putDatum(store storage.Store, input string) {
	d, err := sexp.Parse(input)
	if err != nil {
		errColor.Printf("Parse error: %v\n", err)
		return
	}

	id, err := store.Put(d)
	if err != nil {
		errColor.Printf("Store error: %v\n", err)
		return
	}
	fmt.Println(id)
}

func getDatum(store storage.Store, idStr string) {
	id, err := storage.ParseID(idStr)
	if err != nil {
		errColor.Printf("Error: %v\n", err)
		return
	}

	d, err := store.Get(id)
	if err != nil {
		errColor.Printf("Store error: %v\n", err)
		return
	}
	if d == nil {
		fmt.Println("Not found")
		return
	}
	fmt.Println(sexp.Print(d))
}

func listDatums(store storage.Store) {
	count := 0
	err := store.Walk(func(id storage.ID, d *grimoire.Datum) error {
		fmt.Printf("%s  %s\n", id, sexp.Print(d))
		count++
		return nil
	})
	if err != nil {
		errColor.Printf("Store error: %v\n", err)
		return
	}
	fmt.Printf("%d datums\n", count)
}
