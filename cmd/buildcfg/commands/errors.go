package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/buildcfg/errors"
)

// PrintError writes err and any attached hints to w
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", pterm.Red("Error:"), err.Error())
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s %s\n", pterm.Gray("hint:"), hint)
	}
	for _, detail := range errors.GetAllDetails(err) {
		fmt.Fprintf(w, "  %s %s\n", pterm.Gray("detail:"), detail)
	}
}
