package factor

// curatedFallback is a smaller hand-maintained table covering legacy and
// alternate ids that the canonical dataset does not carry. It is consulted
// only when the canonical lookup misses; when the canonical dataset gains an
// id listed here, the canonical entry wins.
var curatedFallback = map[string]catalogEntry{
	// Legacy ids from the v1 screening source.
	"ofac_sanctions": {
		Name:        "OFAC Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Legacy id for OFAC sanctions designations.",
		Type:        TypeSeed,
	},
	"eu_ec_sanctions_map": {
		Name:        "EU Sanctions Map",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the EU sanctions map.",
		Type:        TypeSeed,
	},
	"swiss_seco_sanctioned": {
		Name:        "Swiss SECO Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the Swiss SECO sanctions list.",
		Type:        TypeSeed,
	},
	"canada_sema_sanctioned": {
		Name:        "Canada SEMA Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity is sanctioned under Canada's Special Economic Measures Act.",
		Type:        TypeSeed,
	},
	"australia_dfat_sanctioned": {
		Name:        "Australia DFAT Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the Australian DFAT consolidated sanctions list.",
		Type:        TypeSeed,
	},
	"pep_rca": {
		Name:        "PEP Relative or Close Associate",
		Category:    "political_exposure",
		Level:       LevelElevated,
		Description: "Legacy id for relatives and close associates of politically exposed persons.",
		Type:        TypeNetwork,
	},
	"former_pep": {
		Name:        "Former PEP",
		Category:    "political_exposure",
		Level:       LevelElevated,
		Description: "Individual formerly held a prominent public function.",
		Type:        TypeSeed,
	},
	"xinjiang_registered": {
		Name:        "Xinjiang-Registered Entity",
		Category:    "forced_labor",
		Level:       LevelHigh,
		Description: "Entity is registered in a region associated with forced labor programs.",
		Type:        TypeSeed,
	},
	"cbp_finding": {
		Name:        "CBP Finding",
		Category:    "forced_labor",
		Level:       LevelCritical,
		Description: "Entity is subject to a formal US CBP forced-labor finding.",
		Type:        TypeSeed,
	},
	"ofsi_financial_sanctions": {
		Name:        "OFSI Financial Sanctions",
		Category:    "sanctions_and_export_control_lists",
		Level:       LevelCritical,
		Description: "Legacy id published under the combined sanctions and export control category.",
		Type:        TypeSeed,
	},
	"unverified_list": {
		Name:        "BIS Unverified List",
		Category:    "export_controls",
		Level:       LevelElevated,
		Description: "Entity appears on the US Commerce Department Unverified List.",
		Type:        TypeSeed,
	},
	"interpol_red_notice": {
		Name:        "Interpol Red Notice",
		Category:    "regulatory_action",
		Level:       LevelCritical,
		Description: "Individual is subject to an Interpol red notice.",
		Type:        TypeSeed,
	},
	"offshore_leaks": {
		Name:        "Offshore Leaks Database",
		Category:    "adverse_media",
		Level:       LevelStandard,
		Description: "Entity appears in the ICIJ offshore leaks database.",
		Type:        TypeSeed,
	},
	"environmental_protection_violation": {
		Name:        "Environmental Protection Violation",
		Category:    "environmental_risk",
		Level:       LevelElevated,
		Description: "Legacy id for environmental protection violations.",
		Type:        TypeSeed,
	},
}
