// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl_cmd.go - The repl command: paste lines into a field interactively.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/inputlimit/internal/edit"
	"github.com/jeranaias/inputlimit/internal/util"
)

// lineReader is the part of liner.State the loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

const replHelp = `Each line is pasted at the end of the field and corrected.
  :clear     empty the field
  :set TEXT  replace the field with TEXT (corrected)
  :show      print the field
  :policy    print the policy
  :help      show this help
  :quit      leave (ctrl+d also works)
`

// HandleRepl handles "repl". History is kept in memory for the session
// only.
func HandleRepl(args Args) error {
	if args.JSON {
		return usageErrorf("repl does not support --json")
	}
	rp, err := resolvePolicy(args)
	if err != nil {
		return err
	}
	field, err := edit.NewField(rp.Policy)
	if err != nil {
		return usageErrorf("invalid policy: %v", err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintf(args.Stdout, "%s %s\n", TitleStyle.Render("inputlimit repl"), DimStyle.Render(rp.Policy.String()))
	fmt.Fprint(args.Stdout, DimStyle.Render(replHelp))
	return runREPL(line, args.Stdout, field)
}

// runREPL reads lines until EOF, an abort or :quit.
func runREPL(r lineReader, w io.Writer, field *edit.Field) error {
	for {
		input, err := r.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(w)
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) != "" {
			r.AppendHistory(input)
		}

		if !strings.HasPrefix(input, ":") {
			field.SetCaret(field.Len())
			field.Paste(input)
			printField(w, field)
			continue
		}

		verb, rest, _ := strings.Cut(input, " ")
		switch verb {
		case ":quit", ":q", ":exit":
			return nil
		case ":clear":
			field.SetText("")
			printField(w, field)
		case ":set":
			field.SetText(rest)
			printField(w, field)
		case ":show":
			printField(w, field)
		case ":policy":
			fmt.Fprintln(w, field.Policy().String())
		case ":help":
			fmt.Fprint(w, replHelp)
		default:
			fmt.Fprintf(w, "%s unknown command %s\n", WarningStyle.Render("[!]"), verb)
		}
	}
}

func printField(w io.Writer, field *edit.Field) {
	text := field.Text()
	fmt.Fprintf(w, "%s (%d)", ValueStyle.Render(util.VisibleText(text)), field.Len())
	if field.Policy().IsDecimal() {
		value, ok := field.RealText()
		padded, _ := field.RealDecimalText()
		if ok {
			fmt.Fprintf(w, "  %s", DimStyle.Render(value+" | "+padded))
		}
	}
	fmt.Fprintln(w)
}
