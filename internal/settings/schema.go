package settings

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const schemaSrc = `
spt:           0 | 1
voice_enabled: 0 | 1
opacity:       int & >=1 & <=10
`

var compileSchema = sync.OnceValues(func() (cue.Value, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + schemaSrc + "})")
	return schema, schema.Err()
})

// Validate checks values against the settings schema.
func Validate(values map[string]int) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile settings schema: %w", err)
	}
	v := schema.Unify(schema.Context().Encode(values))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
