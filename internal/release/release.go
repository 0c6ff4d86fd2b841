// Package release builds the archives and checksums published for each platform.
package release

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactPrefix starts every archive name.
const ArtifactPrefix = "dtft"

// EnvCrateName names the packaged binary.
const EnvCrateName = "CRATE_NAME"

// DefaultBinaryName is used when CRATE_NAME is unset.
const DefaultBinaryName = "dtf"

// Target is one entry of the release matrix.
type Target struct {
	OSName string // display name used in artifact names
	Arch   string // architecture as it appears in artifact names
	GOOS   string
	GOARCH string
}

// Targets is the release matrix.
var Targets = []Target{
	{OSName: "Linux", Arch: "x86_64", GOOS: "linux", GOARCH: "amd64"},
	{OSName: "Linux", Arch: "aarch64", GOOS: "linux", GOARCH: "arm64"},
	{OSName: "macOS", Arch: "x86_64", GOOS: "darwin", GOARCH: "amd64"},
	{OSName: "macOS", Arch: "aarch64", GOOS: "darwin", GOARCH: "arm64"},
	{OSName: "Windows", Arch: "x86_64", GOOS: "windows", GOARCH: "amd64"},
	{OSName: "FreeBSD", Arch: "x86_64", GOOS: "freebsd", GOARCH: "amd64"},
}

// FindTarget returns the matrix entry named "<OSName>/<Arch>".
func FindTarget(name string) (Target, bool) {
	for _, t := range Targets {
		if strings.EqualFold(t.OSName+"/"+t.Arch, name) {
			return t, true
		}
	}
	return Target{}, false
}

// Windows reports whether the target builds a Windows binary.
func (t Target) Windows() bool { return t.GOOS == "windows" }

// Ext returns the archive extension for the target.
func (t Target) Ext() string {
	if t.Windows() {
		return "zip"
	}
	return "tar.gz"
}

// ArtifactName returns "dtft-<OS>-<arch>.<ext>".
func (t Target) ArtifactName() string {
	return fmt.Sprintf("%s-%s-%s.%s", ArtifactPrefix, t.OSName, t.Arch, t.Ext())
}

// BinaryName returns the file name of the binary inside the archive.
func (t Target) BinaryName(crate string) string {
	if crate == "" {
		crate = DefaultBinaryName
	}
	if t.Windows() {
		return crate + ".exe"
	}
	return crate
}

// CrateName returns the binary name configured in the environment.
func CrateName() string {
	if v := strings.TrimSpace(os.Getenv(EnvCrateName)); v != "" {
		return v
	}
	return DefaultBinaryName
}

// ShouldPublish reports whether a release should be published for ref.
func ShouldPublish(ref string) bool {
	return strings.HasPrefix(ref, "refs/tags/v") || ref == "refs/tags/test-release"
}

// ShouldBuild reports whether a workflow event starts a release build.
func ShouldBuild(event, action, branch string) bool {
	if event != "release" || action != "created" {
		return false
	}
	branch = strings.TrimPrefix(branch, "refs/heads/")
	ok, err := filepath.Match("release/*", branch)
	return err == nil && ok
}

// Package writes the archive for t into dir, containing binPath at the archive
// root under the target's binary name. It returns the archive path. On
// failure no archive is left behind.
func Package(t Target, binPath, crate, dir string) (archive string, err error) {
	info, err := os.Stat(binPath)
	if err != nil {
		return "", fmt.Errorf("stat binary: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", binPath)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dist dir: %w", err)
	}
	archive = filepath.Join(dir, t.ArtifactName())
	out, err := os.Create(archive)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(archive)
			archive = ""
		}
	}()

	name := t.BinaryName(crate)
	if t.Windows() {
		return archive, writeZip(out, binPath, name, info)
	}
	return archive, writeTarGz(out, binPath, name, info)
}

func writeTarGz(w io.Writer, src, name string, info os.FileInfo) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o755,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("tar header: %w", err)
	}
	if err := copyFile(tw, src); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	return gz.Close()
}

func writeZip(w io.Writer, src, name string, info os.FileInfo) error {
	zw := zip.NewWriter(w)
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate
	fw, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("zip header: %w", err)
	}
	if err := copyFile(fw, src); err != nil {
		return err
	}
	return zw.Close()
}

func copyFile(w io.Writer, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open binary: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy binary: %w", err)
	}
	return nil
}

// Checksum returns the hex SHA-256 of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteChecksum writes "<archive>.sha256" in shasum format next to the
// archive and returns its path.
func WriteChecksum(archive string) (string, error) {
	if archive == "" {
		return "", errors.New("no archive to checksum")
	}
	sum, err := Checksum(archive)
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", archive, err)
	}
	dst := archive + ".sha256"
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(archive))
	if err := os.WriteFile(dst, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("write checksum: %w", err)
	}
	return dst, nil
}
