package region

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadSaveRoundTrip verifies Save then Load reproduces an equal ordered
// set for a config exercising every blur type and both range shapes.
func TestLoadSaveRoundTrip(t *testing.T) {
	set := NewSet()

	specs := []struct {
		bt    BlurType
		pii   string
		start int
		end   int
	}{
		{BlurGaussian, "email", 0, 100},
		{BlurPixelate, "face", 30, OpenEnd},
		{BlurBlackBox, "", 0, 0},
		{BlurWhiteBox, "license-plate", 7, 7},
	}
	for i, sp := range specs {
		r := Region{
			X: i * 10, Y: i * 5, Width: 20 + i, Height: 30 + i,
			BlurType: sp.bt, Intensity: MinIntensity + i*10,
			PIIType: sp.pii, StartFrame: sp.start, EndFrame: sp.end,
		}
		require.NoError(t, set.Add(r))
	}

	var buf bytes.Buffer
	require.NoError(t, set.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.True(t, set.Equal(loaded), "round-trip must preserve regions and order")
}

// TestLoadAppliesOptionalDefaults verifies pii_type, start_frame and
// end_frame default exactly as the descriptor contract documents.
func TestLoadAppliesOptionalDefaults(t *testing.T) {
	src := `{"regions":[{"x":1,"y":2,"width":3,"height":4,"blur_type":"gaussian","intensity":50}]}`

	set, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	r := set.All()[0]
	assert.Empty(t, r.PIIType)
	assert.Equal(t, 0, r.StartFrame)
	assert.Equal(t, OpenEnd, r.EndFrame)
}

// TestLoadMissingRequiredField verifies each required field is enforced.
func TestLoadMissingRequiredField(t *testing.T) {
	complete := map[string]string{
		"x":         `"x":1`,
		"y":         `"y":2`,
		"width":     `"width":3`,
		"height":    `"height":4`,
		"blur_type": `"blur_type":"gaussian"`,
		"intensity": `"intensity":50`,
	}

	for omit := range complete {
		var parts []string
		for name, frag := range complete {
			if name != omit {
				parts = append(parts, frag)
			}
		}
		src := `{"regions":[{` + strings.Join(parts, ",") + `}]}`

		_, err := Load(strings.NewReader(src))
		require.ErrorIs(t, err, ErrMalformedConfig, "omitting %q must fail", omit)
		assert.Contains(t, err.Error(), omit)
	}
}

// TestLoadRejectsOutOfRangeValues verifies no silent coercion on load.
func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", `{"x":0,"y":0,"width":0,"height":4,"blur_type":"gaussian","intensity":50}`},
		{"negative height", `{"x":0,"y":0,"width":4,"height":-1,"blur_type":"gaussian","intensity":50}`},
		{"negative x", `{"x":-5,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":50}`},
		{"intensity low", `{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":9}`},
		{"intensity high", `{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":101}`},
		{"bad blur type", `{"x":0,"y":0,"width":4,"height":4,"blur_type":"mosaic","intensity":50}`},
		{"end before start", `{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":50,"start_frame":9,"end_frame":3}`},
		{"end below -1", `{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":50,"end_frame":-2}`},
		{"negative start", `{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":50,"start_frame":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(`{"regions":[` + tt.body + `]}`))
			assert.ErrorIs(t, err, ErrMalformedConfig)
		})
	}
}

// TestLoadFailFastReportsIndex verifies the first bad descriptor aborts the
// load and the error names its index.
func TestLoadFailFastReportsIndex(t *testing.T) {
	src := `{"regions":[
		{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":50},
		{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":5},
		{"x":0,"y":0,"width":4,"height":4,"blur_type":"gaussian","intensity":50}
	]}`

	_, err := Load(strings.NewReader(src))
	require.ErrorIs(t, err, ErrMalformedConfig)
	assert.Contains(t, err.Error(), "region 1")
}

// TestLoadIgnoresUnknownFields verifies forward compatibility.
func TestLoadIgnoresUnknownFields(t *testing.T) {
	src := `{"schema":"v2","regions":[{"x":1,"y":2,"width":3,"height":4,
		"blur_type":"pixelate","intensity":40,"note":"ignore me","opacity":0.5}]}`

	set, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

// TestLoadMalformedJSON verifies syntactic breakage maps to ErrMalformedConfig.
func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"regions": [`))
	assert.ErrorIs(t, err, ErrMalformedConfig)
}

// TestLoadEmptyConfig verifies an empty region list is a valid config.
func TestLoadEmptyConfig(t *testing.T) {
	set, err := Load(strings.NewReader(`{"regions":[]}`))
	require.NoError(t, err)
	assert.Zero(t, set.Len())
}

// TestLoadFileSaveFile verifies the path-based helpers round-trip through
// the filesystem and surface open errors.
func TestLoadFileSaveFile(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.Add(mustRegion(t, 3, BlurPixelate)))

	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, set.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, set.Equal(loaded))

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
