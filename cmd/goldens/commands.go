package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/gogpu/golden"
	"github.com/gogpu/golden/compare"
	"github.com/gogpu/golden/suite"
)

var errUsage = errors.New("wrong number of arguments")

func args(cmd *cli.Command, n int) ([]string, error) {
	if cmd.Args().Len() != n {
		return nil, fmt.Errorf("%s: %w, expected %s", cmd.Name, errUsage, cmd.ArgsUsage)
	}
	return cmd.Args().Slice(), nil
}

func runList(_ context.Context, cmd *cli.Command) error {
	a, err := args(cmd, 1)
	if err != nil {
		return err
	}
	dir := a[0]

	var ids []string
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".png") {
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				return err
			}
			ids = append(ids, filepath.ToSlash(rel))
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("list %s: %w", dir, walkErr)
	}
	sort.Sort(natural.StringSlice(ids))

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	for _, id := range ids {
		img, er := imaging.Open(filepath.Join(dir, filepath.FromSlash(id)))
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", id, er))
			fmt.Fprintf(w, "%s\t?\n", id)
			continue
		}
		b := img.Bounds()
		fmt.Fprintf(w, "%s\t%dx%d\n", id, b.Dx(), b.Dy())
	}
	return multierr.Append(err, w.Flush())
}

func runDiff(_ context.Context, cmd *cli.Command) error {
	a, err := args(cmd, 2)
	if err != nil {
		return err
	}
	candidate, err := os.ReadFile(a[0])
	if err != nil {
		return err
	}
	reference, err := os.ReadFile(a[1])
	if err != nil {
		return err
	}

	tolerance := cmd.Uint("tolerance")
	if tolerance > 255 {
		return fmt.Errorf("tolerance %d exceeds 255", tolerance)
	}
	differ := compare.PixelDiffer{Threshold: cmd.Float("threshold"), ChannelTolerance: uint8(tolerance)}
	res, err := differ.Diff(candidate, reference)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if file := cmd.String("out"); file != "" && res.Diff != nil {
		if err := imaging.Save(res.Diff, file); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}
		golden.Logger().Info("goldens: diff written", "file", file)
	}
	if res.Match {
		fmt.Fprintf(out, "match (%.2f%% differ)\n", res.DiffPercent)
		return nil
	}
	if res.Reason != "" {
		fmt.Fprintf(out, "mismatch: %s\n", res.Reason)
	} else {
		fmt.Fprintf(out, "mismatch: %.2f%% (%d pixels) differ\n", res.DiffPercent, res.DiffPixels)
	}
	return errors.New("images differ")
}

func runApprove(_ context.Context, cmd *cli.Command) error {
	a, err := args(cmd, 2)
	if err != nil {
		return err
	}
	approved, err := compare.Approve(a[0], compare.NewFileStore(a[1]))
	sort.Sort(natural.StringSlice(approved))
	for _, id := range approved {
		fmt.Fprintf(cmd.Root().Writer, "approved %s\n", id)
	}
	golden.Logger().Debug("goldens: approve done", "approved", len(approved), "failed", len(multierr.Errors(err)))
	return err
}

func runDevices(_ context.Context, cmd *cli.Command) error {
	var cfgs []golden.Configuration
	if path := cmd.String("suite"); path != "" {
		s, err := suite.LoadFile(path)
		if err != nil {
			return err
		}
		cfgs = s.Configurations()
	} else {
		presets := suite.Presets()
		names := make([]string, 0, len(presets))
		for name := range presets {
			names = append(names, name)
		}
		sort.Sort(natural.StringSlice(names))
		for _, name := range names {
			cfgs = append(cfgs, presets[name])
		}
	}

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tCONSTRAINTS\tRATIO\tTEXT\tLOCALE\tORIENTATION")
	for _, c := range cfgs {
		fmt.Fprintf(w, "%s\t%s\t%v\t%g\t%g\t%s\t%s\n",
			c.Name, c.Kind, c.Constraints, c.PixelRatio, c.TextScale, c.Locale, c.Orientation)
	}
	return w.Flush()
}
