package styleguide

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGuide = `
brand: Shoply
tone:
  persona: "вежливый, деловой, дружелюбный"
  sentences_max: 3
  bullets: true
  avoid:
    - "жаргон"
    - "КАПС"
  must_include:
    - "обращение на вы"
fallback:
  no_data: "У меня нет точной информации."
format:
  fields:
    answer: "краткий ответ на вопрос"
    tone: "совпадает ли тон (да/нет) + одна фраза почему"
    actions: "следующие шаги для клиента (0-3 пункта)"
`

func TestParse_Valid(t *testing.T) {
	sg, err := Parse([]byte(validGuide))
	require.NoError(t, err)

	assert.Equal(t, "Shoply", sg.Brand)
	assert.Equal(t, 3, sg.Tone.SentencesMax)
	assert.True(t, sg.Tone.Bullets)
	assert.Equal(t, []string{"жаргон", "КАПС"}, sg.Tone.Avoid)
	assert.Equal(t, "У меня нет точной информации.", sg.Fallback.NoData)
	assert.Len(t, sg.Format.Fields, 3)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("brand: [unclosed"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "parse")
}

func TestParse_MissingBrand(t *testing.T) {
	_, err := Parse([]byte(`
tone:
  persona: "дружелюбный"
  sentences_max: 3
fallback:
  no_data: "нет данных"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestParse_ZeroSentencesMax(t *testing.T) {
	_, err := Parse([]byte(`
brand: Shoply
tone:
  persona: "дружелюбный"
  sentences_max: 0
fallback:
  no_data: "нет данных"
`))
	require.Error(t, err)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Error(t, loadErr.Unwrap())
}

func TestJoinedLists(t *testing.T) {
	sg, err := Parse([]byte(validGuide))
	require.NoError(t, err)

	assert.Equal(t, "жаргон, КАПС", sg.AvoidList())
	assert.Equal(t, "обращение на вы", sg.MustIncludeList())
}
