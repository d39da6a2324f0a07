// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// edit_cmd.go - The check, correct and real commands.

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/inputlimit/internal/edit"
	"github.com/jeranaias/inputlimit/internal/grapheme"
	"github.com/jeranaias/inputlimit/internal/util"
)

// HandleCheck handles "check": vet a single edit of --text.
//
// The edit replaces --len clusters at cluster index --at (default: end of
// text) with --insert. A rejected edit prints the verdict and returns a
// RejectedError.
func HandleCheck(args Args) error {
	rp, err := resolvePolicy(args)
	if err != nil {
		return err
	}
	flags := args.Flags
	if !flags.HasFlag("insert") && !flags.HasFlag("len") {
		return ErrMissingArgument("--insert S or --len L", `inputlimit check --max 3 --text ab --insert c`)
	}

	text := flags.Flag("text")
	at, err := flags.FlagIntOrDefault("at", grapheme.Count(text))
	if err != nil {
		return usageErrorf("%v", err)
	}
	length, err := flags.FlagIntOrDefault("len", 0)
	if err != nil {
		return usageErrorf("%v", err)
	}

	req := edit.Request{
		Text:        text,
		Start:       at,
		Length:      length,
		Replacement: flags.Flag("insert"),
		Composing:   flags.BoolFlag("composing"),
	}
	res := edit.ValidateEdit(rp.Policy, req)

	data := CheckData{
		Policy:   rp.Policy.String(),
		Accepted: res.Accepted,
		Text:     res.Text,
		Caret:    res.Caret,
	}
	var cmdErr error
	if !res.Accepted {
		cmdErr = &RejectedError{Replacement: req.Replacement}
	}

	return respond(args, CmdCheck, data, cmdErr, func(w io.Writer) {
		if res.Accepted {
			fmt.Fprintf(w, "%s accepted\n", RenderStatus("ok"))
		} else {
			fmt.Fprintf(w, "%s %s\n", RenderStatus("rejected"), util.VisibleText(req.Replacement))
		}
		printRow(w, "text", fmt.Sprintf("%q", res.Text))
		printRow(w, "caret", fmt.Sprint(res.Caret))
		printRow(w, "policy", data.Policy)
	})
}

// HandleCorrect handles "correct": bring --text in line with the policy.
func HandleCorrect(args Args) error {
	rp, err := resolvePolicy(args)
	if err != nil {
		return err
	}
	flags := args.Flags
	if !flags.HasFlag("text") {
		return ErrMissingArgument("--text T", `inputlimit correct --classes chinese --text "a中b文"`)
	}

	text := flags.Flag("text")
	caret, err := flags.FlagIntOrDefault("caret", grapheme.Count(text))
	if err != nil {
		return usageErrorf("%v", err)
	}
	res := edit.CorrectBuffer(rp.Policy, text, caret)

	data := CorrectData{
		Policy:  rp.Policy.String(),
		Input:   text,
		Text:    res.Text,
		Caret:   res.Caret,
		Changed: res.Text != text,
	}
	return respond(args, CmdCorrect, data, nil, func(w io.Writer) {
		status := "ok"
		if data.Changed {
			status = "changed"
		}
		fmt.Fprintf(w, "%s %s\n", RenderStatus(status), ValueStyle.Render(res.Text))
		printRow(w, "input", fmt.Sprintf("%q", text))
		printRow(w, "caret", fmt.Sprint(res.Caret))
		printRow(w, "policy", data.Policy)
	})
}

// HandleReal handles "real": print the display values of --text.
func HandleReal(args Args) error {
	rp, err := resolvePolicy(args)
	if err != nil {
		return err
	}
	flags := args.Flags
	if !flags.HasFlag("text") {
		return ErrMissingArgument("--text T", "inputlimit real --decimal parts:2:3 --text 1.2")
	}

	v, err := edit.New(rp.Policy)
	if err != nil {
		return usageErrorf("invalid policy: %v", err)
	}
	text := flags.Flag("text")
	data := RealData{Policy: rp.Policy.String(), Text: text}
	if s, ok := v.RealText(text); ok {
		data.Real = &s
	}
	if s, ok := v.RealDecimalText(text); ok {
		data.RealDecimal = &s
	}

	return respond(args, CmdReal, data, nil, func(w io.Writer) {
		printRow(w, "text", fmt.Sprintf("%q", text))
		printRow(w, "real", optional(data.Real))
		printRow(w, "real decimal", optional(data.RealDecimal))
		printRow(w, "policy", data.Policy)
	})
}

func printRow(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", RenderLabel(label), value)
}

func optional(s *string) string {
	if s == nil {
		return DimStyle.Render("(none)")
	}
	return ValueStyle.Render(*s)
}
