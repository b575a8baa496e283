package dot

import (
	"github.com/regionviz/regionviz/pkg/region"
)

// paletteSize is the number of colors in the paired12 Brewer scheme the
// graph declares once at the top level. Cluster colors are indices into
// that scheme, always in [1, paletteSize].
const paletteSize = 12

// colorScheme is the palette declaration understood by Graphviz.
const colorScheme = `colorscheme = "paired12"`

// styleFor returns the cluster style and paired12 color index for a
// region. Adjacent depths alternate through the palette two steps at a
// time; filled regions land on the odd (saturated) entries and outlined
// ones on the even entries, so the two styles never share a color at the
// same depth.
//
// A region is filled unless the only-simple-regions option is set and the
// region is not simple.
func styleFor(r *region.Region, onlySimple bool) (style string, color int) {
	base := r.Depth() * 2 % paletteSize
	if !onlySimple || r.IsSimple() {
		return "filled", base + 1
	}
	return "solid", base + 2
}
