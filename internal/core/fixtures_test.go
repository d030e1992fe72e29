package core

// testDefinitions mirrors the production categories without importing the
// tables package.
func testDefinitions() []CategoryDefinition {
	return []CategoryDefinition{
		{
			Key:           "1_piles_portables",
			Order:         1,
			Name:          "Piles portables et piles bouton",
			Description:   "En vrac ou intégrées dans un appareil",
			ReportLabel:   "Piles portables",
			LeadingDigits: "1234567",
			EntryFields:   []EntryField{FieldANSI, FieldIEC, FieldDesignation, FieldRemark},
		},
		{
			Key:           "2_piles_industrielles",
			Order:         2,
			Name:          "Piles industrielles",
			Description:   "En vrac ou intégrées dans un appareil",
			Exemption:     "avec possibilité d'exonération",
			ReportLabel:   "Piles industrielles",
			LeadingDigits: "8",
			EntryFields:   []EntryField{FieldRemark},
		},
		{
			Key:           "3_batteries_vehicules",
			Order:         3,
			Name:          "Batteries de véhicules",
			Description:   "Pour le démarrage, l'éclairage ou l'allumage",
			Exemption:     "avec possibilité d'exonération",
			ReportLabel:   "Batteries véhicules",
			LeadingDigits: "9",
			EntryFields:   []EntryField{FieldRemark},
		},
	}
}

func row(line int, fields ...string) RawRow {
	return RawRow{Line: line, Fields: fields}
}

// fold builds a catalog from rows in one pass.
func fold(meta Metadata, defs []CategoryDefinition, kw *OrderedMap[[]string], rows []RawRow) (*Database, Stats) {
	b := NewBuilder(meta, defs, kw)
	for _, r := range rows {
		b.Apply(r)
	}
	return b.Database(), b.Stats()
}
