package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pseudosel/pseudo"
	"pseudosel/state"
)

// catalogRow is what catalog template sees for every entry.
type catalogRow struct {
	Index    int
	Text     string // canonical form, ":before"
	Name     string // without colon
	CSS      string // "::before"
	Internal bool
	Cascade  pseudo.CascadeType
}

// catalogRows collects entries passing the filter, in natural name order.
func catalogRows(cat *pseudo.Catalog, internal, public bool) []catalogRow {
	var rows []catalogRow
	for pe := range cat.All() {
		if internal && !pe.Internal() || public && pe.Internal() {
			continue
		}
		rows = append(rows, catalogRow{
			Text:     pe.Text(),
			Name:     strings.TrimPrefix(pe.Text(), ":"),
			CSS:      pe.String(),
			Internal: pe.Internal(),
			Cascade:  pseudo.Classify(pe),
		})
	}
	slices.SortFunc(rows, func(a, b catalogRow) int {
		switch {
		case a.Name == b.Name:
			return 0
		case natural.Less(a.Name, b.Name):
			return -1
		}
		return 1
	})
	for i := range rows {
		rows[i].Index = i + 1
	}
	return rows
}

func renderCatalog(w io.Writer, text string, rows []catalogRow) error {
	tmpl, err := template.New("catalog").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("unable to parse catalog template: %w", err)
	}
	for _, row := range rows {
		if err := tmpl.Execute(w, row); err != nil {
			return fmt.Errorf("unable to render catalog entry %s: %w", row.Text, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func runCatalog(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	internal, public := cmd.Bool("internal"), cmd.Bool("public")
	if internal && public {
		return errors.New("--internal and --public are mutually exclusive")
	}

	rows := catalogRows(pseudo.Default(), internal, public)
	env.Log.Debug("Listing catalog", zap.Int("entries", len(rows)), zap.Bool("internal", internal), zap.Bool("public", public))

	return renderCatalog(os.Stdout, env.Cfg.Catalog.Template, rows)
}
