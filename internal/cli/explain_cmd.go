// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// explain_cmd.go - The explain command: a markdown description of a policy.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/inputlimit/internal/charclass"
	"github.com/jeranaias/inputlimit/internal/decimal"
	"github.com/jeranaias/inputlimit/internal/edit"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown for terminal display, returning content
// unchanged if the renderer cannot be built.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// HandleExplain handles "explain". Markdown is rendered only when stdout
// is a terminal so piped output stays plain.
func HandleExplain(args Args) error {
	rp, err := resolvePolicy(args)
	if err != nil {
		return err
	}
	md := ExplainPolicy(rp.Label, rp.Policy)
	data := ExplainData{Policy: rp.Policy.String(), Markdown: md}

	return respond(args, CmdExplain, data, nil, func(w io.Writer) {
		if isTerminal(w) {
			fmt.Fprint(w, renderMarkdown(md, min(GetTerminalWidth(), 100)))
			return
		}
		fmt.Fprint(w, md)
	})
}

var classDescriptions = []struct {
	class charclass.Class
	text  string
}{
	{charclass.Digit, "ASCII digits `0-9`"},
	{charclass.Lowercase, "ASCII lowercase letters `a-z`"},
	{charclass.Uppercase, "ASCII uppercase letters `A-Z`"},
	{charclass.Chinese, "CJK unified ideographs (U+4E00 to U+9FA5)"},
	{charclass.Emoji, "emoji, including modifier, flag, keycap and ZWJ sequences"},
}

// ExplainPolicy describes p as markdown. label names the field and may be
// empty.
func ExplainPolicy(label string, p edit.Policy) string {
	var b strings.Builder
	if label == "" {
		label = "inline policy"
	}
	fmt.Fprintf(&b, "# %s\n\n", label)
	fmt.Fprintf(&b, "`%s`\n\n", p.String())

	if p.IsDecimal() {
		explainDecimal(&b, p.Decimal)
	} else {
		explainGeneral(&b, p)
	}

	if p.Normalize.NFC || p.Normalize.FoldWidth {
		b.WriteString("\n## Normalization\n\n")
		b.WriteString("Input is rewritten before it is checked:\n\n")
		if p.Normalize.NFC {
			b.WriteString("- **NFC**: a letter followed by combining marks is composed into one character.\n")
		}
		if p.Normalize.FoldWidth {
			b.WriteString("- **Width folding**: full-width forms such as `１２` become `12`.\n")
		}
	}

	b.WriteString("\n## Editing\n\n")
	b.WriteString("- A typed edit that would break the policy is refused and the text is left as it was.\n")
	b.WriteString("- Pasted or programmatically set text is corrected: whatever does not fit is dropped.\n")
	b.WriteString("- Lengths count grapheme clusters; a cluster such as a flag or `e` plus an accent is never split.\n")
	return b.String()
}

func explainGeneral(b *strings.Builder, p edit.Policy) {
	b.WriteString("## Accepted input\n\n")
	if p.Classes == 0 || p.Classes.IsUnrestricted() {
		b.WriteString("- Any character.\n")
	} else {
		b.WriteString("- Only these characters:\n")
		for _, cd := range classDescriptions {
			if p.Classes.Has(cd.class) {
				fmt.Fprintf(b, "  - %s\n", cd.text)
			}
		}
	}
	if p.MaxLength > 0 {
		fmt.Fprintf(b, "- At most **%d** grapheme clusters.\n", p.MaxLength)
	} else {
		b.WriteString("- No length limit.\n")
	}
	if p.Pattern != "" {
		fmt.Fprintf(b, "- Only text matching `%s` is kept (case-insensitive).\n", p.Pattern)
	}
}

func explainDecimal(b *strings.Builder, d decimal.Policy) {
	b.WriteString("## Decimal shape\n\n")
	var example string
	switch d := d.(type) {
	case decimal.FixedParts:
		fmt.Fprintf(b, "- Up to **%d** integer digits.\n", d.IntegerDigits)
		if d.DecimalDigits > 0 {
			fmt.Fprintf(b, "- Up to **%d** digits after the decimal point.\n", d.DecimalDigits)
		} else {
			b.WriteString("- No decimal point.\n")
		}
		example = strings.Repeat("9", d.IntegerDigits)
		if d.DecimalDigits > 0 {
			example += "." + strings.Repeat("9", d.DecimalDigits)
		}
	case decimal.FixedTotal:
		fmt.Fprintf(b, "- Up to **%d** digits in total, before and after the decimal point.\n", d.TotalDigits)
		example = strings.Repeat("9", d.TotalDigits)
		if d.TotalDigits > 1 {
			example = strings.Repeat("9", d.TotalDigits-1) + ".9"
		}
	case decimal.SignificantDigits:
		fmt.Fprintf(b, "- Up to **%d** integer digits.\n", d.IntegerDigits)
		if d.SignificantDigits > 0 && d.MaxDecimalDigits > 0 {
			fmt.Fprintf(b, "- Up to **%d** significant fractional digits after any leading zeros.\n", d.SignificantDigits)
			fmt.Fprintf(b, "- Never more than **%d** digits after the decimal point.\n", d.MaxDecimalDigits)
		} else {
			b.WriteString("- No decimal point.\n")
		}
		example = strings.Repeat("9", d.IntegerDigits)
	}
	b.WriteString("- Leading zeros are collapsed, so `007` becomes `7`.\n")
	if d.SignAllowed() {
		b.WriteString("- A single leading `+` or `-` is allowed.\n")
	} else {
		b.WriteString("- No sign.\n")
	}
	if example != "" {
		fmt.Fprintf(b, "\nLargest value: `%s`\n", example)
	}
}
