package factor

// catalogEntry is one row of a factor-descriptor table. Category is kept as
// the raw string published by the reference dataset; consumers convert it
// through CategoryFrom so that synonym consolidation and closed-set
// redirection are applied uniformly.
type catalogEntry struct {
	Name        string
	Category    string
	Level       Level
	Description string
	Type        Type
}

// canonicalCatalog is the authoritative factor-id table derived from the
// reference dataset shipped with the system. It is consulted first by
// Classify and is immutable for the process lifetime.
var canonicalCatalog = map[string]catalogEntry{
	// Direct sanctions designations.
	"sanctioned": {
		Name:        "Sanctioned",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on a sanctions list currently in force.",
		Type:        TypeSeed,
	},
	"formerly_sanctioned": {
		Name:        "Formerly Sanctioned",
		Category:    "sanctions",
		Level:       LevelElevated,
		Description: "Entity appeared on a sanctions list that has since delisted it.",
		Type:        TypeSeed,
	},
	"sanctioned_adjacent": {
		Name:        "Sanctioned (Network)",
		Category:    "sanctions",
		Level:       LevelElevated,
		Description: "Entity is one hop removed from a sanctioned entity in the corporate network.",
		Type:        TypeNetwork,
	},
	"ofac_sdn_sanctioned": {
		Name:        "OFAC SDN List",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the US OFAC Specially Designated Nationals list.",
		Type:        TypeSeed,
	},
	"ofac_ssi_sanctioned": {
		Name:        "OFAC Sectoral Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the US OFAC Sectoral Sanctions Identifications list.",
		Type:        TypeSeed,
	},
	"eu_sanctioned": {
		Name:        "EU Consolidated Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the EU consolidated financial sanctions list.",
		Type:        TypeSeed,
	},
	"uk_hmt_sanctioned": {
		Name:        "UK HMT Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the UK HM Treasury consolidated sanctions list.",
		Type:        TypeSeed,
	},
	"un_sanctioned": {
		Name:        "UN Security Council Sanctions",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity appears on the UN Security Council consolidated sanctions list.",
		Type:        TypeSeed,
	},
	"owned_by_sanctioned_entity": {
		Name:        "Owned by Sanctioned Entity",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity is majority owned, directly or indirectly, by a sanctioned entity.",
		Type:        TypeNetwork,
	},
	"partially_owned_by_sanctioned_entity": {
		Name:        "Partially Owned by Sanctioned Entity",
		Category:    "sanctions",
		Level:       LevelHigh,
		Description: "A sanctioned entity holds a minority ownership interest in this entity.",
		Type:        TypeNetwork,
	},

	// Export controls: published under a category that is a synonym of
	// sanctions and consolidated on read.
	"export_controls": {
		Name:        "Export Controls",
		Category:    "export_controls",
		Level:       LevelCritical,
		Description: "Entity appears on an export control or end-user restriction list.",
		Type:        TypeSeed,
	},
	"bis_entity_list": {
		Name:        "BIS Entity List",
		Category:    "export_controls",
		Level:       LevelCritical,
		Description: "Entity appears on the US Commerce Department Entity List.",
		Type:        TypeSeed,
	},
	"bis_denied_persons": {
		Name:        "BIS Denied Persons List",
		Category:    "export_controls",
		Level:       LevelCritical,
		Description: "Entity appears on the US Commerce Department Denied Persons List.",
		Type:        TypeSeed,
	},
	"meu_list": {
		Name:        "Military End User List",
		Category:    "export_controls",
		Level:       LevelCritical,
		Description: "Entity appears on the US Military End User list.",
		Type:        TypeSeed,
	},
	"export_controls_adjacent": {
		Name:        "Export Controls (Network)",
		Category:    "export_controls",
		Level:       LevelElevated,
		Description: "Entity is one hop removed from an export-controlled entity.",
		Type:        TypeNetwork,
	},

	// Political exposure.
	"pep": {
		Name:        "Politically Exposed Person",
		Category:    "political_exposure",
		Level:       LevelHigh,
		Description: "Individual holds or has held a prominent public function.",
		Type:        TypeSeed,
	},
	"pep_adjacent": {
		Name:        "PEP Associate",
		Category:    "political_exposure",
		Level:       LevelElevated,
		Description: "Entity is a close associate or family member of a politically exposed person.",
		Type:        TypeNetwork,
	},
	"owned_by_pep": {
		Name:        "Owned by PEP",
		Category:    "political_exposure",
		Level:       LevelHigh,
		Description: "Entity is owned or controlled by a politically exposed person.",
		Type:        TypeNetwork,
	},
	"state_owned": {
		Name:        "State-Owned Enterprise",
		Category:    "political_exposure",
		Level:       LevelElevated,
		Description: "Entity is owned or controlled by a government body.",
		Type:        TypeSeed,
	},
	"soe_adjacent": {
		Name:        "State-Owned Enterprise (Network)",
		Category:    "political_exposure",
		Level:       LevelStandard,
		Description: "Entity is one hop removed from a state-owned enterprise.",
		Type:        TypeNetwork,
	},

	// Regulatory and law-enforcement action.
	"regulatory_action": {
		Name:        "Regulatory Action",
		Category:    "regulatory_action",
		Level:       LevelHigh,
		Description: "Entity has been subject to a regulatory enforcement action.",
		Type:        TypeSeed,
	},
	"law_enforcement_action": {
		Name:        "Law Enforcement Action",
		Category:    "regulatory_action",
		Level:       LevelHigh,
		Description: "Entity has been named in a criminal or civil law enforcement action.",
		Type:        TypeSeed,
	},
	"sec_enforcement": {
		Name:        "SEC Enforcement Action",
		Category:    "regulatory_action",
		Level:       LevelHigh,
		Description: "Entity has been subject to a US SEC enforcement action.",
		Type:        TypeSeed,
	},
	"fincen_advisory": {
		Name:        "FinCEN Advisory",
		Category:    "regulatory_action",
		Level:       LevelElevated,
		Description: "Entity has been named in a FinCEN advisory or alert.",
		Type:        TypeSeed,
	},
	"debarred": {
		Name:        "Debarred",
		Category:    "regulatory_action",
		Level:       LevelHigh,
		Description: "Entity is excluded from government procurement or contracting.",
		Type:        TypeSeed,
	},
	"world_bank_debarred": {
		Name:        "World Bank Debarment",
		Category:    "regulatory_action",
		Level:       LevelHigh,
		Description: "Entity appears on the World Bank listing of ineligible firms and individuals.",
		Type:        TypeSeed,
	},
	"regulatory_action_adjacent": {
		Name:        "Regulatory Action (Network)",
		Category:    "regulatory_action",
		Level:       LevelElevated,
		Description: "Entity is one hop removed from an entity subject to regulatory action.",
		Type:        TypeNetwork,
	},

	// Forced labor.
	"forced_labor": {
		Name:        "Forced Labor Risk",
		Category:    "forced_labor",
		Level:       LevelCritical,
		Description: "Entity has been linked to forced labor in its operations or supply chain.",
		Type:        TypeSeed,
	},
	"uflpa_entity_list": {
		Name:        "UFLPA Entity List",
		Category:    "forced_labor",
		Level:       LevelCritical,
		Description: "Entity appears on the Uyghur Forced Labor Prevention Act entity list.",
		Type:        TypeSeed,
	},
	"wro_entity": {
		Name:        "Withhold Release Order",
		Category:    "forced_labor",
		Level:       LevelCritical,
		Description: "Entity is subject to a US CBP withhold release order.",
		Type:        TypeSeed,
	},
	"forced_labor_xinjiang_origin": {
		Name:        "Xinjiang-Origin Goods",
		Category:    "forced_labor",
		Level:       LevelHigh,
		Description: "Entity sources goods from a region associated with forced labor programs.",
		Type:        TypeSeed,
	},
	"forced_labor_xinjiang_origin_subtier": {
		Name:        "Xinjiang-Origin Goods (Sub-Tier)",
		Category:    "forced_labor",
		Level:       LevelElevated,
		Description: "A sub-tier supplier of the entity sources goods from a region associated with forced labor programs.",
		Type:        TypeNetwork,
	},
	"forced_labor_adjacent": {
		Name:        "Forced Labor Risk (Network)",
		Category:    "forced_labor",
		Level:       LevelElevated,
		Description: "Entity is one hop removed from an entity linked to forced labor.",
		Type:        TypeNetwork,
	},

	// Environmental risk.
	"environmental_risk": {
		Name:        "Environmental Risk",
		Category:    "environmental_risk",
		Level:       LevelElevated,
		Description: "Entity has been linked to environmental violations or high-impact activities.",
		Type:        TypeSeed,
	},
	"epa_violation": {
		Name:        "EPA Violation",
		Category:    "environmental_risk",
		Level:       LevelElevated,
		Description: "Entity has been cited for a US EPA environmental violation.",
		Type:        TypeSeed,
	},
	"illegal_fishing": {
		Name:        "IUU Fishing",
		Category:    "environmental_risk",
		Level:       LevelHigh,
		Description: "Entity has been linked to illegal, unreported, or unregulated fishing.",
		Type:        TypeSeed,
	},
	"deforestation_risk": {
		Name:        "Deforestation Risk",
		Category:    "environmental_risk",
		Level:       LevelElevated,
		Description: "Entity operates in supply chains with elevated deforestation exposure.",
		Type:        TypeSeed,
	},

	// Adverse media.
	"adverse_media": {
		Name:        "Adverse Media",
		Category:    "adverse_media",
		Level:       LevelElevated,
		Description: "Entity has been the subject of negative media coverage relevant to financial crime.",
		Type:        TypeSeed,
	},
	"adverse_media_financial_crime": {
		Name:        "Adverse Media: Financial Crime",
		Category:    "adverse_media",
		Level:       LevelHigh,
		Description: "Entity has been linked to fraud, money laundering, or corruption in media reporting.",
		Type:        TypeSeed,
	},
	"adverse_media_terrorism": {
		Name:        "Adverse Media: Terrorism",
		Category:    "adverse_media",
		Level:       LevelCritical,
		Description: "Entity has been linked to terrorism or terrorist financing in media reporting.",
		Type:        TypeSeed,
	},
	"adverse_media_narcotics": {
		Name:        "Adverse Media: Narcotics",
		Category:    "adverse_media",
		Level:       LevelHigh,
		Description: "Entity has been linked to narcotics trafficking in media reporting.",
		Type:        TypeSeed,
	},

	// General relevance signals.
	"basel_aml_high_risk_jurisdiction": {
		Name:        "High-Risk Jurisdiction (Basel AML)",
		Category:    "relevant",
		Level:       LevelStandard,
		Description: "Entity is registered in a jurisdiction rated high risk by the Basel AML Index.",
		Type:        TypeSeed,
	},
	"fatf_high_risk_jurisdiction": {
		Name:        "FATF High-Risk Jurisdiction",
		Category:    "relevant",
		Level:       LevelElevated,
		Description: "Entity is registered in a jurisdiction under increased FATF monitoring.",
		Type:        TypeSeed,
	},
	"cpi_score_low": {
		Name:        "Low Corruption Perceptions Score",
		Category:    "relevant",
		Level:       LevelStandard,
		Description: "Entity operates in a jurisdiction with a low Transparency International CPI score.",
		Type:        TypeSeed,
	},
	"shell_company_indicators": {
		Name:        "Shell Company Indicators",
		Category:    "relevant",
		Level:       LevelElevated,
		Description: "Entity exhibits registration patterns associated with shell companies.",
		Type:        TypeSeed,
	},
	"dissolved_entity": {
		Name:        "Dissolved Entity",
		Category:    "relevant",
		Level:       LevelStandard,
		Description: "Entity has been dissolved or struck off the corporate register.",
		Type:        TypeSeed,
	},

	// Pre-screened association (psa_*) factors: the screening source flags
	// these when a curated list entity appears in the subject's ownership or
	// trade network.
	"psa_sanctioned": {
		Name:        "Pre-Screened Association: Sanctioned",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity is associated with a pre-screened sanctioned entity.",
		Type:        TypePSA,
	},
	"psa_owned_by_sanctioned_entity": {
		Name:        "Pre-Screened Association: Owned by Sanctioned Entity",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity is associated with an entity owned by a pre-screened sanctioned entity.",
		Type:        TypePSA,
	},
	"psa_owned_by_sanctioned_eu_ec_sanctions_map_entity": {
		Name:        "Pre-Screened Association: EU Sanctions Map Ownership",
		Category:    "sanctions",
		Level:       LevelCritical,
		Description: "Entity is associated with an entity owned by a party on the EU sanctions map.",
		Type:        TypePSA,
	},
	"psa_export_controls": {
		Name:        "Pre-Screened Association: Export Controls",
		Category:    "export_controls",
		Level:       LevelCritical,
		Description: "Entity is associated with a pre-screened export-controlled entity.",
		Type:        TypePSA,
	},
	"psa_forced_labor": {
		Name:        "Pre-Screened Association: Forced Labor",
		Category:    "forced_labor",
		Level:       LevelCritical,
		Description: "Entity is associated with a pre-screened forced-labor entity.",
		Type:        TypePSA,
	},
	"psa_state_owned": {
		Name:        "Pre-Screened Association: State-Owned",
		Category:    "political_exposure",
		Level:       LevelElevated,
		Description: "Entity is associated with a pre-screened state-owned enterprise.",
		Type:        TypePSA,
	},

	// Seed list factors raised directly from curated regulatory datasets.
	"seed_regulatory_action": {
		Name:        "Seed List: Regulatory Action",
		Category:    "regulatory_action",
		Level:       LevelHigh,
		Description: "Entity appears directly on a curated regulatory action dataset.",
		Type:        TypeSeed,
	},
	"seed_wro_entity": {
		Name:        "Seed List: Withhold Release Order",
		Category:    "forced_labor",
		Level:       LevelCritical,
		Description: "Entity appears directly on the withhold release order dataset.",
		Type:        TypeSeed,
	},
}

// CatalogSize reports the number of entries in the canonical table. Exposed
// for observability and sanity tests, not for iteration.
func CatalogSize() int {
	return len(canonicalCatalog)
}
