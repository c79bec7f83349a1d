package envfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyContent(t *testing.T) {
	result, err := Parse("")
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestParse_EtcEnvironment(t *testing.T) {
	content := "# system wide\nPATH=\"/usr/local/sbin:/usr/local/bin:/usr/bin\"\nLANG=en_US.UTF-8\n"
	env, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/sbin:/usr/local/bin:/usr/bin", env["PATH"])
	assert.Equal(t, "en_US.UTF-8", env["LANG"])
}

func TestParse_FirstAssignmentWins(t *testing.T) {
	env, err := Parse("PATH=/a\nPATH=/b\n")
	require.NoError(t, err)
	assert.Equal(t, "/a", env["PATH"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "missing equals", content: "PATH", want: "line 1"},
		{name: "unterminated double quote", content: "A=1\nPATH=\"/usr/bin", want: "line 2"},
		{name: "unterminated single quote", content: "PATH='/usr/bin", want: "unterminated"},
		{name: "trailing garbage", content: "PATH=\"/usr/bin\" junk", want: "trailing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGet(t *testing.T) {
	value, ok, err := Get("export PATH='/opt/bin:/usr/bin' # comment\n", "PATH")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/opt/bin:/usr/bin", value)

	_, ok, err = Get("LANG=C\n", "PATH")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_ReplacesInPlace(t *testing.T) {
	content := "# header\nPATH=\"/usr/bin\"\nLANG=C\n"
	got := Set(content, "PATH", "/usr/bin:/opt/ffmpeg/bin")
	assert.Equal(t, "# header\nPATH=/usr/bin:/opt/ffmpeg/bin\nLANG=C\n", got)
}

func TestSet_AppendsWhenMissing(t *testing.T) {
	assert.Equal(t, "LANG=C\nPATH=/usr/bin\n", Set("LANG=C", "PATH", "/usr/bin"))
	assert.Equal(t, "PATH=/usr/bin\n", Set("", "PATH", "/usr/bin"))
}

func TestSet_DropsLaterDuplicates(t *testing.T) {
	got := Set("PATH=/a\nX=1\nPATH=/b\n", "PATH", "/c")
	assert.Equal(t, "PATH=/c\nX=1\n", got)
}

func TestSet_QuotesSpaces(t *testing.T) {
	got := Set("", "PATH", "/usr/bin:/opt/my tools/bin")
	assert.Equal(t, "PATH=\"/usr/bin:/opt/my tools/bin\"\n", got)

	value, ok, err := Get(got, "PATH")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/usr/bin:/opt/my tools/bin", value)
}

func TestParseLine_CommentAndBlank(t *testing.T) {
	for _, line := range []string{"", "   \t  ", "# comment"} {
		key, value, ok, err := parseLine(line)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, key)
		assert.Empty(t, value)
	}
}

func TestEncodeValue_EscapesQuotes(t *testing.T) {
	encoded := encodeValue(`a "b" \c`)
	assert.Equal(t, `"a \"b\" \\c"`, encoded)
	assert.Equal(t, `a "b" \c`, unescapeDoubleQuotedValue(encoded[1:len(encoded)-1]))
}
