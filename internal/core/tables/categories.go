package tables

import "github.com/JonMunkholm/inobat/internal/core"

const orrchimExemption = "avec possibilité d'exonération de la taxe, ORRChim art. 6.1 al. 3"

func init() {
	registerPortable()
	registerIndustrial()
	registerVehicle()
}

// Article numbers 10000-70006.
func registerPortable() {
	core.Register(core.CategoryDefinition{
		Key:           "1_piles_portables",
		Order:         1,
		Name:          "Piles portables et piles bouton",
		Description:   "En vrac ou intégrées dans un appareil",
		ReportLabel:   "Piles portables",
		LeadingDigits: "1234567",
		EntryFields: []core.EntryField{
			core.FieldANSI,
			core.FieldIEC,
			core.FieldDesignation,
			core.FieldRemark,
		},
	})
}

// Article numbers 81000-89111.
func registerIndustrial() {
	core.Register(core.CategoryDefinition{
		Key:           "2_piles_industrielles",
		Order:         2,
		Name:          "Piles industrielles",
		Description:   "En vrac ou intégrées dans un appareil",
		Exemption:     orrchimExemption,
		ReportLabel:   "Piles industrielles",
		LeadingDigits: "8",
		EntryFields:   []core.EntryField{core.FieldRemark},
	})
}

// Article numbers 91000-95036.
func registerVehicle() {
	core.Register(core.CategoryDefinition{
		Key:           "3_batteries_vehicules",
		Order:         3,
		Name:          "Batteries de véhicules",
		Description:   "Pour le démarrage, l'éclairage ou l'allumage",
		Exemption:     orrchimExemption,
		ReportLabel:   "Batteries véhicules",
		LeadingDigits: "9",
		EntryFields:   []core.EntryField{core.FieldRemark},
	})
}
