package templating_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/stellarium_screenshots/templating"
)

// helper creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestRender_default_tags(t *testing.T) {
	t.Parallel()

	en := templating.Engine{}

	got, err := en.Render(
		"Hello {{name}}!",
		map[string]any{"name": "World"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", got)
}

func TestRender_custom_tags(t *testing.T) {
	t.Parallel()

	en := templating.Engine{
		StartTag: "<%",
		EndTag:   "%>",
	}

	got, err := en.Render(
		"function f() { return <%val%>; }",
		map[string]any{"val": 42},
	)
	require.NoError(t, err)
	assert.Equal(t, "function f() { return 42; }", got)
}

func TestRender_single_braces_survive(t *testing.T) {
	t.Parallel()

	en := templating.Engine{}

	got, err := en.Render(
		"for (;;) {\n  f({{arg}});\n}",
		map[string]any{"arg": "x"},
	)
	require.NoError(t, err)
	assert.Equal(t, "for (;;) {\n  f(x);\n}", got)
}

func TestRender_missing_key(t *testing.T) {
	t.Parallel()

	en := templating.Engine{}

	_, err := en.Render(
		"{{known}} and {{unknown}}",
		map[string]any{"known": "yes"},
	)
	require.Error(t, err)
	require.ErrorIs(t, err, templating.ErrMissingKey)
	assert.Contains(t, err.Error(), `"unknown"`)
	assert.Contains(t, err.Error(), "rendering template")
}

func TestRender_unterminated_tag(t *testing.T) {
	t.Parallel()

	en := templating.Engine{}

	tests := []struct {
		name string
		tpl  string
	}{
		{"only tag", "{{open"},
		{"after closed tag", "{{a}} and {{open"},
		{"trailing start tag", "core.wait(1);\n{{"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := en.Render(tt.tpl, map[string]any{"a": 1})
			require.Error(t, err)
			require.ErrorIs(t, err, templating.ErrUnterminatedTag)
			assert.Contains(t, err.Error(), "rendering template")
		})
	}
}

func TestRender_unterminated_custom_tag(t *testing.T) {
	t.Parallel()

	en := templating.Engine{StartTag: "<%", EndTag: "%>"}

	_, err := en.Render("f() { <%name", map[string]any{"name": "x"})
	require.ErrorIs(t, err, templating.ErrUnterminatedTag)

	got, err := en.Render("f() {{ <%name%> }}", map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "f() {{ x }}", got)
}

func TestRender_dedents_before_substitution(t *testing.T) {
	t.Parallel()

	en := templating.Engine{}

	got, err := en.Render(
		"\n    a = {{a}};\n      b;\n    ",
		map[string]any{"a": 1},
	)
	require.NoError(t, err)
	assert.Equal(t, "\na = 1;\n  b;\n", got)
}

func TestDedent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "common margin",
			in:   "  a\n  b\n",
			want: "a\nb\n",
		},
		{
			name: "nested indentation kept",
			in:   "\ta\n\t\tb\n",
			want: "a\n\tb\n",
		},
		{
			name: "whitespace only lines ignored",
			in:   "    a\n  \n    b\n",
			want: "a\n\nb\n",
		},
		{
			name: "no common margin",
			in:   "a\n  b\n",
			want: "a\n  b\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, templating.Dedent(tt.in))
		})
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "#ffffff", "#ffffff"},
		{"int", 36, "36"},
		{"uint64", uint64(250), "250"},
		{"fractional float", 2460967.0585855003, "2460967.0585855003"},
		{"integral float", 2461386.0, "2461386.0"},
		{"rounded fov", 0.0167, "0.0167"},
		{"small float", 0.00001, "1e-05"},
		{"threshold float", 0.0001, "0.0001"},
		{"huge float", 1e16, "1e+16"},
		{"negative zero", math.Copysign(0, -1), "-0.0"},
		{"nan", math.NaN(), "nan"},
		{"inf", math.Inf(-1), "-inf"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, templating.Stringify(tt.in))
		})
	}
}

func TestParseVars(t *testing.T) {
	t.Parallel()

	got, err := templating.ParseVars(
		[]string{"size=40", "color=#ff0000", "size=48", "note=a=b"},
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]any{
			"size":  "48",
			"color": "#ff0000",
			"note":  "a=b",
		},
		got,
	)
}

func TestParseVars_bad_format(t *testing.T) {
	t.Parallel()

	_, err := templating.ParseVars([]string{"NOEQUALS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME=value")
}

func TestReadTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := writeTemp(t, dir, "tpl.ssc", "core.wait({{delay}});")

	got, err := templating.ReadTemplate(pa)
	require.NoError(t, err)
	assert.Equal(t, "core.wait({{delay}});", string(got))
}

func TestReadTemplate_missing_file(t *testing.T) {
	t.Parallel()

	_, err := templating.ReadTemplate("/nonexistent/template.ssc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading template")
}

func TestWriteFile_truncates_existing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := writeTemp(t, dir, "out.ssc", "a much longer previous content")

	require.NoError(t, templating.WriteFile(pa, "short"))

	got, err := os.ReadFile(pa) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "short", string(got))
}

func TestWriteFile_missing_directory(t *testing.T) {
	t.Parallel()

	err := templating.WriteFile(
		filepath.Join(t.TempDir(), "missing", "out.ssc"),
		"content",
	)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "writing output")
}

func FuzzRender(f *testing.F) {
	f.Add("Hello {{name}}!", "name", "World")
	f.Add("{{a}}{{b}}", "a", "x")
	f.Add("no tags here", "key", "val")
	f.Add("{{", "k", "v")
	f.Add("}}", "k", "v")
	f.Add("{{key}}", "key", "")
	f.Add("", "key", "val")

	f.Fuzz(func(
		t *testing.T,
		tpl string,
		key string,
		val string,
	) {
		en := templating.Engine{}

		// We only verify it does not panic.
		_, _ = en.Render( //nolint:errcheck // fuzz: error irrelevant
			tpl,
			map[string]any{key: val},
		)
	})
}
