package config

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occurrences(flag Flag, n int) []Occurrence {
	occs := make([]Occurrence, n)
	for i := range occs {
		occs[i] = Occurrence{Flag: flag, Value: fmt.Sprintf("%s-%d", flag, i+1)}
	}
	return occs
}

func TestAssembleDefaults(t *testing.T) {
	cfg, err := Assemble(&Parsed{Directory: "/tmp/suite", HasDir: true})
	require.NoError(t, err)

	want := &Configuration{
		directory: "/tmp/suite",
		module:    DefaultModule,
		harness:   DefaultHarness,
	}
	if diff := cmp.Diff(want, cfg, cmp.AllowUnexported(Configuration{})); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, cfg.Requires())
	assert.Empty(t, cfg.Publishers())
}

func TestAssembleRepeatableWithinLimit(t *testing.T) {
	for _, flag := range []Flag{FlagRequire, FlagPublisher, FlagInclude, FlagExclude} {
		for n := 0; n <= MaxValues; n++ {
			t.Run(fmt.Sprintf("%s/%d", flag, n), func(t *testing.T) {
				cfg, err := Assemble(&Parsed{
					Occurrences: occurrences(flag, n),
					Directory:   "suite",
					HasDir:      true,
				})
				require.NoError(t, err)

				var got []string
				switch flag {
				case FlagRequire:
					got = cfg.Requires()
				case FlagPublisher:
					got = cfg.Publishers()
				case FlagInclude:
					got = cfg.Meta().Include
				case FlagExclude:
					got = cfg.Meta().Exclude
				}
				require.Len(t, got, n)
				for i, v := range got {
					assert.Equal(t, fmt.Sprintf("%s-%d", flag, i+1), v, "order must follow the command line")
				}
			})
		}
	}
}

func TestAssembleTooManyValues(t *testing.T) {
	for _, flag := range []Flag{FlagRequire, FlagPublisher, FlagInclude, FlagExclude} {
		t.Run(string(flag), func(t *testing.T) {
			cfg, err := Assemble(&Parsed{
				Occurrences: occurrences(flag, MaxValues+1),
				Directory:   "suite",
				HasDir:      true,
			})
			require.Error(t, err)
			assert.Nil(t, cfg)

			var tooMany *TooManyValuesError
			require.ErrorAs(t, err, &tooMany)
			assert.Equal(t, flag, tooMany.Flag)
			assert.Equal(t, MaxValues, tooMany.Max)
			assert.Contains(t, err.Error(), "--"+string(flag))
			assert.True(t, IsUsageError(err))
		})
	}
}

func TestAssembleFailsOnFirstOverflow(t *testing.T) {
	occs := append(occurrences(FlagInclude, MaxValues+1), occurrences(FlagExclude, MaxValues+1)...)

	_, err := Assemble(&Parsed{Occurrences: occs, Directory: "suite", HasDir: true})

	var tooMany *TooManyValuesError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, FlagInclude, tooMany.Flag)
}

func TestAssembleOverflowBeatsMissingDirectory(t *testing.T) {
	_, err := Assemble(&Parsed{Occurrences: occurrences(FlagRequire, MaxValues+1)})

	var tooMany *TooManyValuesError
	assert.ErrorAs(t, err, &tooMany)
}

func TestAssembleLastWriteWins(t *testing.T) {
	cfg, err := Assemble(&Parsed{
		Occurrences: []Occurrence{
			{Flag: FlagModule, Value: "First"},
			{Flag: FlagHarness, Value: "H1"},
			{Flag: FlagModule, Value: "Second"},
			{Flag: FlagHarness, Value: "H2"},
			{Flag: FlagModule, Value: "Tests::World"},
		},
		Directory: "suite",
		HasDir:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tests::World", cfg.Module())
	assert.Equal(t, "H2", cfg.Harness())
}

func TestAssembleScalarsAreNotBounded(t *testing.T) {
	cfg, err := Assemble(&Parsed{
		Occurrences: occurrences(FlagModule, MaxValues*2),
		Directory:   "suite",
		HasDir:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("module-%d", MaxValues*2), cfg.Module())
}

func TestAssembleMissingDirectory(t *testing.T) {
	tests := []struct {
		name   string
		parsed *Parsed
	}{
		{"absent", &Parsed{}},
		{"empty", &Parsed{Directory: "", HasDir: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.parsed)
			require.ErrorIs(t, err, ErrMissingDirectory)
			assert.True(t, IsUsageError(err))
		})
	}
}

func TestAssembleDirectoryNotChecked(t *testing.T) {
	cfg, err := Assemble(&Parsed{Directory: "/does/not/exist/anywhere", HasDir: true})
	require.NoError(t, err)
	assert.Equal(t, "/does/not/exist/anywhere", cfg.Directory())
}

func TestAssembleEmptyModuleRejected(t *testing.T) {
	_, err := Assemble(&Parsed{
		Occurrences: []Occurrence{{Flag: FlagModule, Value: ""}},
		Directory:   "suite",
		HasDir:      true,
	})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.True(t, IsUsageError(err))
}

func TestAssembleUnknownFlag(t *testing.T) {
	_, err := Assemble(&Parsed{
		Occurrences: []Occurrence{{Flag: "bogus", Value: "x"}},
		Directory:   "suite",
		HasDir:      true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--bogus")
}

func TestConfigurationIsImmutable(t *testing.T) {
	cfg, err := Assemble(&Parsed{
		Occurrences: []Occurrence{
			{Flag: FlagRequire, Value: "a.js"},
			{Flag: FlagPublisher, Value: "Pub"},
			{Flag: FlagInclude, Value: "smoke"},
		},
		Directory: "suite",
		HasDir:    true,
	})
	require.NoError(t, err)

	cfg.Requires()[0] = "mutated.js"
	cfg.Publishers()[0] = "Mutated"
	cfg.Meta().Include[0] = "mutated"

	assert.Equal(t, []string{"a.js"}, cfg.Requires())
	assert.Equal(t, []string{"Pub"}, cfg.Publishers())
	assert.Equal(t, []string{"smoke"}, cfg.Meta().Include)
}

func TestDocument(t *testing.T) {
	cfg, err := Assemble(&Parsed{
		Occurrences: []Occurrence{
			{Flag: FlagRequire, Value: "helpers.js"},
			{Flag: FlagPublisher, Value: "Tests::Reporter"},
			{Flag: FlagExclude, Value: "slow"},
		},
		Directory: "/tmp/suite",
		HasDir:    true,
	})
	require.NoError(t, err)

	want := map[string]any{
		"directory":  "/tmp/suite",
		"module":     DefaultModule,
		"harness":    DefaultHarness,
		"publishers": []any{"Tests::Reporter"},
		"meta": map[string]any{
			"include": []any{},
			"exclude": []any{"slow"},
		},
	}
	if diff := cmp.Diff(want, cfg.Document()); diff != "" {
		t.Errorf("Document() mismatch (-want +got):\n%s", diff)
	}
}
