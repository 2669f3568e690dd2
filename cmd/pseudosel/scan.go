package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"pseudosel/archive"
	"pseudosel/css"
	"pseudosel/selector"
	"pseudosel/state"
)

func runScan(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no stylesheets to scan")
	}

	origin := env.Cfg.Selectors.Origin
	if name := cmd.String("origin"); len(name) > 0 {
		if origin, err = selector.ParseOrigin(name); err != nil {
			return fmt.Errorf("unable to parse origin: %w", err)
		}
	}

	parser, err := env.StylesheetParser(origin)
	if err != nil {
		return fmt.Errorf("unable to prepare stylesheet parser: %w", err)
	}

	scanned := 0
	for _, source := range cmd.Args().Slice() {
		if ctx.Err() != nil {
			return multierr.Append(err, ctx.Err())
		}
		er := archive.Sources(source, func(name string, data []byte) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			scanned++
			sheet := parser.Parse(data, name)
			reportStylesheet(env.Log, name, sheet)

			if cmd.Bool("dump") {
				fmt.Fprintf(os.Stdout, "%s\n", sheet.Dump())
			}
			if cmd.Bool("canonical") {
				if _, err := writeCanonical(os.Stdout, name, sheet); err != nil {
					return fmt.Errorf("unable to write '%s': %w", name, err)
				}
			}
			return nil
		})
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to scan '%s': %w", source, er))
		}
	}
	env.Log.Debug("Scan finished", zap.Int("stylesheets", scanned), zap.Int("failed sources", len(multierr.Errors(err))))
	return err
}

func writeCanonical(w io.Writer, fname string, sheet *css.Stylesheet) (int64, error) {
	n, err := fmt.Fprintf(w, "/* %s */\n", fname)
	if err != nil {
		return int64(n), err
	}
	m, err := sheet.WriteTo(w)
	return int64(n) + m, err
}

// reportStylesheet logs summary for a stylesheet and details for every
// selector that uses pseudo vocabulary.
func reportStylesheet(log *zap.Logger, fname string, sheet *css.Stylesheet) {
	var selectors, pseudos, unshareable int
	for _, r := range sheet.Rules {
		for _, sel := range r.Selectors {
			selectors++
			if !sel.Shareable {
				unshareable++
			}
			ct, ok := sel.Cascade()
			if !ok && len(sel.Classes) == 0 {
				continue
			}
			fields := []zap.Field{
				zap.String("selector", sel.Raw),
				zap.Stringer("states", sel.States),
				zap.Bool("shareable", sel.Shareable),
			}
			if ok {
				pseudos++
				fields = append(fields,
					zap.Stringer("pseudo-element", sel.Pseudo),
					zap.Stringer("cascade", ct),
					zap.Bool("internal", sel.Pseudo.Internal()))
			}
			if r.Media != "" {
				fields = append(fields, zap.String("media", r.Media))
			}
			log.Debug("Selector", fields...)
		}
	}
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet problem", zap.String("file", fname), zap.String("warning", w))
	}
	log.Info("Stylesheet scanned",
		zap.String("file", fname),
		zap.Stringer("origin", sheet.Origin),
		zap.Int("rules", len(sheet.Rules)),
		zap.Int("selectors", selectors),
		zap.Int("pseudo-elements", pseudos),
		zap.Int("not shareable", unshareable),
		zap.Int("warnings", len(sheet.Warnings)))
}
