package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/gosuri/uitable"
	"github.com/reign/calleditor/internal/calllog"
	"github.com/reign/calleditor/internal/service"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validateOutput(output string) error {
	switch output {
	case outputTable, outputJSON:
		return nil
	}
	return fmt.Errorf("unsupported output %q (expected table or json)", output)
}

func printCalls(w io.Writer, calls []service.CallDTO, output string) error {
	if output == outputJSON {
		return printJSON(w, calls)
	}
	if len(calls) == 0 {
		_, err := fmt.Fprintln(w, "No call logs found.")
		return err
	}

	header := color.New(color.Bold, color.Underline)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 32
	tbl.AddRow(
		header.Sprint("ID"),
		header.Sprint("TYPE"),
		header.Sprint("NAME"),
		header.Sprint("NUMBER"),
		header.Sprint("DATE"),
		header.Sprint("DURATION"),
	)
	for _, c := range calls {
		tbl.AddRow(c.ID, typeColor(calllog.CallType(c.TypeCode)).Sprint(c.Type), c.DisplayName, c.Number, c.Date, c.Duration)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func typeColor(t calllog.CallType) *color.Color {
	switch t {
	case calllog.Incoming:
		return color.New(color.FgCyan)
	case calllog.Outgoing:
		return color.New(color.FgGreen)
	case calllog.Missed, calllog.Rejected, calllog.Blocked:
		return color.New(color.FgRed)
	case calllog.Unknown:
		return color.New(color.Faint)
	default:
		return color.New(color.FgYellow)
	}
}

func printGrants(w io.Writer, grants map[calllog.Capability]bool, output string) error {
	if output == outputJSON {
		return printJSON(w, grants)
	}

	granted := color.New(color.FgGreen, color.Bold)
	denied := color.New(color.FgRed, color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range calllog.Capabilities {
		state := denied.Sprint("denied")
		if grants[c] {
			state = granted.Sprint("granted")
		}
		tbl.AddRow(strings.ToUpper(string(c)), state)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
