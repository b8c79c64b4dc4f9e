package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "var", "lib", "postgresql", "data")

	if err := EnsureDir(path, 0o700); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat created dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("created path is not a directory")
	}
}

func TestEnsureDir_ExistingIsNoop(t *testing.T) {
	t.Parallel()
	path := t.TempDir()

	if err := EnsureDir(path, 0o700); err != nil {
		t.Errorf("EnsureDir on existing dir: %v", err)
	}
}

func TestProbeWritable_WritableDir(t *testing.T) {
	t.Parallel()
	if err := ProbeWritable(t.TempDir()); err != nil {
		t.Errorf("ProbeWritable on temp dir: %v", err)
	}
}

func TestProbeWritable_ReadOnlyDir(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	if err := ProbeWritable(dir); err == nil {
		t.Error("expected error for read-only directory, got nil")
	}
}

func TestNonEmptyFile(t *testing.T) {
	t.Parallel()

	type testCase struct {
		setup   func(t *testing.T, dir string) string
		want    bool
		wantErr bool
	}

	tests := map[string]testCase{
		"missing file": {
			setup: func(_ *testing.T, dir string) string {
				return filepath.Join(dir, "PG_VERSION")
			},
			want: false,
		},
		"empty file": {
			setup: func(t *testing.T, dir string) string {
				return createTestFile(t, dir, "PG_VERSION", "")
			},
			want: false,
		},
		"non-empty file": {
			setup: func(t *testing.T, dir string) string {
				return createTestFile(t, dir, "PG_VERSION", "16\n")
			},
			want: true,
		},
		"directory at path": {
			setup: func(t *testing.T, dir string) string {
				sub := filepath.Join(dir, "PG_VERSION")
				if err := os.Mkdir(sub, 0o700); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				return sub
			},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := tc.setup(t, t.TempDir())

			got, err := NonEmptyFile(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NonEmptyFile: %v", err)
			}
			if got != tc.want {
				t.Errorf("NonEmptyFile = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContainsPlaintext(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	createTestFile(t, dir, "postgresql.conf", "port = 5432\n")
	createTestFile(t, dir, "notes.txt", "the secret hides here: hunter2\n")

	found, err := ContainsPlaintext(dir, []byte("hunter2"))
	if err != nil {
		t.Fatalf("ContainsPlaintext: %v", err)
	}
	if !found {
		t.Error("expected needle to be found")
	}

	found, err = ContainsPlaintext(dir, []byte("swordfish"))
	if err != nil {
		t.Fatalf("ContainsPlaintext: %v", err)
	}
	if found {
		t.Error("expected needle to be absent")
	}
}
