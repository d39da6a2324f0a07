// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/inputlimit/internal/charclass"
	"github.com/jeranaias/inputlimit/internal/decimal"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	for _, f := range cfg.Fields {
		p, err := f.Policy()
		require.NoError(t, err, f.Name)
		assert.NoError(t, p.Check(), f.Name)
	}
}

func TestFieldConfig_Policy(t *testing.T) {
	p, err := FieldConfig{Name: "n", Classes: []string{"digit", "cjk"}, MaxLength: 4}.Policy()
	require.NoError(t, err)
	assert.Equal(t, charclass.Digit|charclass.Chinese, p.Classes)
	assert.Equal(t, 4, p.MaxLength)
	assert.Nil(t, p.Decimal)

	p, err = FieldConfig{Name: "d", Decimal: "sig:3:2:5:signed"}.Policy()
	require.NoError(t, err)
	assert.Equal(t, decimal.SignificantDigits{IntegerDigits: 3, SignificantDigits: 2, MaxDecimalDigits: 5, AllowSign: true}, p.Decimal)

	_, err = FieldConfig{Name: "x", Classes: []string{"klingon"}}.Policy()
	assert.ErrorIs(t, err, charclass.ErrUnknownClass)

	_, err = FieldConfig{Name: "y", Decimal: "parts:two"}.Policy()
	assert.ErrorIs(t, err, decimal.ErrInvalidSpec)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := &Config{
		Version: "9",
		UI:      UIConfig{Theme: "neon"},
		Fields: []FieldConfig{
			{Name: "a"},
			{Name: "a"},
			{Pattern: "("},
			{Name: "mixed", MaxLength: 3, Decimal: "total:3"},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	assert.Equal(t, []string{"version", "ui.theme", "fields.a", "fields[2].name", "fields[2]", "fields.mixed"}, fields)
}

func TestConfig_Field(t *testing.T) {
	cfg := Default()
	f, err := cfg.Field("price")
	require.NoError(t, err)
	assert.Equal(t, "Price", f.DisplayLabel())

	_, err = cfg.Field("missing")
	assert.ErrorIs(t, err, ErrFieldNotFound)

	assert.Equal(t, "bare", FieldConfig{Name: "bare"}.DisplayLabel())
	assert.Contains(t, cfg.FieldNames(), "nickname")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvTheme, "LIGHT")
	t.Setenv(EnvShowReal, "0")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.UI.ShowReal)
}

// =============================================================================
// LOAD AND SAVE
// =============================================================================

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
version = "1"

[ui]
theme = "dark"

[[fields]]
name = "nickname"
classes = ["chinese"]
max_length = 5

[fields.normalize]
nfc = true

[[fields]]
name = "price"
decimal = "parts:2:3"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 40, cfg.UI.Width, "defaults filled")
	require.Len(t, cfg.Fields, 2)
	assert.True(t, cfg.Fields[0].Normalize.NFC)
	assert.Equal(t, "parts:2:3", cfg.Fields[1].Decimal)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := writeFile(t, "config.toml", "[[fields]]\nname = \"a\"\nmax_len = 3\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown keys")
}

func TestLoad_YAMLAndJSON(t *testing.T) {
	yml := writeFile(t, "config.yaml", `
fields:
  - name: code
    classes: [digit, upper]
    max_length: 6
`)
	cfg, err := Load(yml)
	require.NoError(t, err)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, []string{"digit", "upper"}, cfg.Fields[0].Classes)

	js := writeFile(t, "config.json", `{"fields":[{"name":"q","decimal":"total:5"}]}`)
	cfg, err = Load(js)
	require.NoError(t, err)
	assert.Equal(t, "total:5", cfg.Fields[0].Decimal)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeFile(t, "config.toml", "[[fields]]\nname = \"p\"\ndecimal = \"parts:-1:2\"\n")
	_, err := Load(path)
	require.Error(t, err)

	var verrs ValidateErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDefault_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "config.toml"))
	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, len(Default().Fields), len(cfg.Fields))
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := Default()
			require.NoError(t, Save(want, path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestEncodeTOML_Header(t *testing.T) {
	data, err := EncodeTOML(Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), "# inputlimit configuration file")
	assert.Contains(t, string(data), `decimal = "sig:3:2:5:signed"`)
}
