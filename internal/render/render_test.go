package render

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/fwver/internal/domain"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name       string
		descriptor domain.VersionDescriptor
		want       string
	}{
		{
			name: "clean tree",
			descriptor: domain.VersionDescriptor{
				Major: 1, Minor: 0, Patch: 1,
				CommitHash: "a1b2c3d",
			},
			want: "v1.0.1-a1b2c3d",
		},
		{
			name: "dirty tree appends marker",
			descriptor: domain.VersionDescriptor{
				Major: 2, Minor: 5, Patch: 10,
				CommitHash: "deadbee",
				Dirty:      true,
			},
			want: "v2.5.10-deadbee+",
		},
		{
			name: "all zero components",
			descriptor: domain.VersionDescriptor{
				Major: 0, Minor: 0, Patch: 0,
				CommitHash: "0000000",
			},
			want: "v0.0.0-0000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compact(&tt.descriptor)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompactIsIdempotent(t *testing.T) {
	d := &domain.VersionDescriptor{
		Major: 3, Minor: 1, Patch: 4,
		CommitHash: "15926ab",
		Dirty:      true,
	}

	first := Compact(d)
	second := Compact(d)

	assert.Equal(t, first, second)
}

func TestDefinesCleanTree(t *testing.T) {
	d := &domain.VersionDescriptor{
		Major: 0, Minor: 0, Patch: 0,
		CommitHash: "0000000",
	}

	got := Defines(d)

	want := "FW_VERSION_MAJOR=0\n" +
		"FW_VERSION_MINOR=0\n" +
		"FW_VERSION_PATCH=0\n" +
		"FW_VERSION_HASH=\"0000000\"\n" +
		"FW_VERSION_DIRTY_INDEX=\"\"\n"
	assert.Equal(t, want, got)
}

func TestDefinesDirtyTree(t *testing.T) {
	d := &domain.VersionDescriptor{
		Major: 2, Minor: 5, Patch: 10,
		CommitHash: "deadbee",
		Dirty:      true,
	}

	got := Defines(d)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "FW_VERSION_MAJOR=2", lines[0])
	assert.Equal(t, "FW_VERSION_MINOR=5", lines[1])
	assert.Equal(t, "FW_VERSION_PATCH=10", lines[2])
	assert.Equal(t, "FW_VERSION_HASH=\"deadbee\"", lines[3])
	assert.Equal(t, "FW_VERSION_DIRTY_INDEX=\"+\"", lines[4])
}

func TestHeaderStructure(t *testing.T) {
	d := &domain.VersionDescriptor{
		Major: 1, Minor: 2, Patch: 3,
		CommitHash: "abc1234",
		Dirty:      true,
	}

	got := Header(d)

	assert.Contains(t, got, "#ifndef __version_h\n")
	assert.Contains(t, got, "#define __version_h\n")
	assert.Contains(t, got, "#endif /* __version_h */\n")
	assert.Contains(t, got, "#define FW_VERSION_FULL \"v1.2.3-abc1234+\"\n")
	assert.Contains(t, got, "#define FW_VERSION_HASH \"abc1234\"\n")
	assert.Contains(t, got, "#define FW_VERSION_DIRTY_INDEX \"+\"\n")
	assert.True(t, strings.HasSuffix(got, "\n"))
}

// TestHeaderRoundTrip reparses the integer literals out of the header text
// and checks they reproduce the descriptor's numeric components exactly.
func TestHeaderRoundTrip(t *testing.T) {
	d := &domain.VersionDescriptor{
		Major: 12, Minor: 34, Patch: 5678,
		CommitHash: "fedcba9",
	}

	got := Header(d)

	assert.Equal(t, d.Major, headerIntLiteral(t, got, "FW_VERSION_MAJOR"))
	assert.Equal(t, d.Minor, headerIntLiteral(t, got, "FW_VERSION_MINOR"))
	assert.Equal(t, d.Patch, headerIntLiteral(t, got, "FW_VERSION_PATCH"))
}

// headerIntLiteral extracts the unquoted integer literal defined for name.
func headerIntLiteral(t *testing.T, header, name string) uint64 {
	t.Helper()

	prefix := "#define " + name + " "
	for _, line := range strings.Split(header, "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := strings.TrimPrefix(line, prefix)
		n, err := strconv.ParseUint(value, 10, 64)
		require.NoError(t, err, "literal for %s must be an unquoted integer", name)
		return n
	}
	t.Fatalf("header does not define %s", name)
	return 0
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Style
		wantErr bool
	}{
		{name: "compact", input: "compact", want: StyleCompact},
		{name: "defines", input: "defines", want: StyleDefines},
		{name: "header", input: "header", want: StyleHeader},
		{name: "unknown", input: "json", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "Compact", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "compact")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderDispatch(t *testing.T) {
	d := &domain.VersionDescriptor{
		Major: 1, Minor: 0, Patch: 1,
		CommitHash: "a1b2c3d",
	}

	compact, err := Render(d, StyleCompact)
	require.NoError(t, err)
	assert.Equal(t, Compact(d), compact)

	defines, err := Render(d, StyleDefines)
	require.NoError(t, err)
	assert.Equal(t, Defines(d), defines)

	header, err := Render(d, StyleHeader)
	require.NoError(t, err)
	assert.Equal(t, Header(d), header)

	_, err = Render(d, Style("yaml"))
	require.Error(t, err)
}
