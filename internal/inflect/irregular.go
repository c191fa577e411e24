package inflect

// DefaultIrregulars lists singular/plural pairs the jinzhu/inflection rule
// set gets wrong or does not know. Every Engine starts with them.
var DefaultIrregulars = map[string]string{
	"goose":      "geese",
	"tooth":      "teeth",
	"foot":       "feet",
	"mouse":      "mice",
	"louse":      "lice",
	"woman":      "women",
	"ox":         "oxen",
	"criterion":  "criteria",
	"phenomenon": "phenomena",
	"cactus":     "cacti",
	"fungus":     "fungi",
	"nucleus":    "nuclei",
	"radius":     "radii",
	"loaf":       "loaves",
	"leaf":       "leaves",
	"knife":      "knives",
	"life":       "lives",
	"wife":       "wives",
	"potato":     "potatoes",
	"tomato":     "tomatoes",
	"hero":       "heroes",
	"echo":       "echoes",
}
