package tables

import "github.com/JonMunkholm/inobat/internal/core"

// Synonyms used downstream to match free-text product descriptions to a
// battery family. Carried into the catalog unchanged.
func init() {
	core.RegisterKeywords("pile", "pile", "battery", "batterie", "accumulateur", "cell")
	core.RegisterKeywords("rechargeable", "rechargeable", "lithium", "li-ion", "nimh", "nicd", "lifepo4")
	core.RegisterKeywords("alcaline", "alcaline", "alkaline")
	core.RegisterKeywords("zinc", "zinc", "zinc-charbon", "zinc-carbon")
	core.RegisterKeywords("outil", "perceuse", "visseuse", "scie", "outil", "tool", "robot")
	core.RegisterKeywords("vehicule", "vélo", "bike", "ebike", "scooter", "trottinette", "moto", "auto", "voiture")
	core.RegisterKeywords("industriel", "industriel", "industrial", "traction", "solaire")
}
