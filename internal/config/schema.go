package config

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed options.cue
var optionsSchema string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error
)

func loadSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		root := schemaCtx.CompileString(optionsSchema, cue.Filename("options.cue"))
		if err := root.Err(); err != nil {
			schemaErr = fmt.Errorf("compile options schema: %w", err)
			return
		}
		root = root.FillPath(cue.ParsePath("#maxValues"), MaxValues)
		schemaDef = root.LookupPath(cue.ParsePath("#Options"))
		if err := schemaDef.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Options: %w", err)
		}
	})
	return schemaCtx, schemaDef, schemaErr
}

// ValidateDocument checks an options document against options.cue.
func ValidateDocument(doc map[string]any) error {
	ctx, def, err := loadSchema()
	if err != nil {
		return err
	}
	v := def.Unify(ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}
