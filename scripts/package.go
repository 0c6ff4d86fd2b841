// Release packager: builds dtf for matrix entries and writes archives plus checksums.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/VoxDroid/dtf/internal/logging"
	"github.com/VoxDroid/dtf/internal/release"
)

func main() {
	var (
		targets []string
		dist    string
		version string
		ref     string
	)
	cmd := &cobra.Command{
		Use:          "package",
		Short:        "Build and package dtf release archives",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = logging.Setup(os.Stderr, "info")
			selected, err := selectTargets(targets)
			if err != nil {
				return err
			}
			if ref != "" && !release.ShouldPublish(ref) {
				log.Info().Str("ref", ref).Msg("ref is not publishable; archives are built but not released")
			}
			crate := release.CrateName()
			g, ctx := errgroup.WithContext(cmd.Context())
			for _, t := range selected {
				g.Go(func() error { return buildOne(ctx, t, crate, dist, version) })
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringSliceVar(&targets, "target", nil, "matrix entries to build, e.g. Linux/x86_64 (default: all)")
	cmd.Flags().StringVar(&dist, "dist", "dist", "output directory")
	cmd.Flags().StringVar(&version, "version", "", "version stamped into the binary")
	cmd.Flags().StringVar(&ref, "ref", os.Getenv("GITHUB_REF"), "git ref being released")
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func selectTargets(names []string) ([]release.Target, error) {
	if len(names) == 0 {
		return release.Targets, nil
	}
	out := make([]release.Target, 0, len(names))
	for _, n := range names {
		t, ok := release.FindTarget(n)
		if !ok {
			return nil, fmt.Errorf("unknown target %q", n)
		}
		out = append(out, t)
	}
	return out, nil
}

func buildOne(ctx context.Context, t release.Target, crate, dist, version string) error {
	buildDir, err := os.MkdirTemp("", "dtf-build-")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(buildDir) }()

	bin := filepath.Join(buildDir, t.BinaryName(crate))
	args := []string{"build", "-trimpath", "-o", bin}
	if version != "" {
		args = append(args, "-ldflags", "-s -w -X github.com/VoxDroid/dtf/internal/version.Version="+version)
	}
	args = append(args, ".")
	build := exec.CommandContext(ctx, "go", args...)
	build.Env = append(os.Environ(), "CGO_ENABLED=0", "GOOS="+t.GOOS, "GOARCH="+t.GOARCH)
	if out, err := build.CombinedOutput(); err != nil {
		return fmt.Errorf("%s/%s: go build: %w\n%s", t.OSName, t.Arch, err, strings.TrimSpace(string(out)))
	}

	archive, err := release.Package(t, bin, crate, dist)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", t.OSName, t.Arch, err)
	}
	sum, err := release.WriteChecksum(archive)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", t.OSName, t.Arch, err)
	}
	log.Info().Str("archive", archive).Str("checksum", sum).Msg("packaged")
	return nil
}
