package prefabs

import (
	"embed"
	"os"
	"strings"

	"github.com/milk9111/newton/drive"
)

//go:embed *.yaml
var embedded embed.FS

// specs reads scene and spriteset specs from the prefabs directory when the
// game runs from the repository, otherwise from the copies built into the
// binary.
var specs = drive.New(nil, os.DirFS("prefabs"), embedded)

// Load returns the raw YAML of a spec. The name may carry a prefabs/ prefix.
func Load(name string) ([]byte, error) {
	return specs.ReadFile(strings.TrimPrefix(drive.CleanPath(name), "prefabs/"))
}
