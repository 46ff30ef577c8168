package filter

// knownAnalytes is the built-in catalog of common analyte names and
// abbreviations, covering the usual CBC, metabolic, liver, lipid, and
// thyroid panels. Callers can extend the set via AddAnalytes.
var knownAnalytes = []string{
	// Complete blood count
	"WBC", "RBC", "HGB", "HCT", "MCV", "MCH", "MCHC", "RDW", "MPV",
	"PLT", "PLATELET", "PLATELETS", "HEMOGLOBIN", "HEMATOCRIT",
	"NEUTROPHILS", "LYMPHOCYTES", "MONOCYTES", "EOSINOPHILS",
	"BASOPHILS", "ESR",

	// Basic and comprehensive metabolic panels
	"GLUCOSE", "BUN", "CREATININE", "SODIUM", "POTASSIUM", "CHLORIDE",
	"CO2", "CALCIUM", "MAGNESIUM", "PHOSPHORUS", "ALBUMIN", "PROTEIN",
	"BILIRUBIN", "EGFR", "UREA",

	// Liver panel
	"AST", "ALT", "ALP", "GGT", "SGOT", "SGPT",

	// Lipid panel
	"CHOLESTEROL", "TRIGLYCERIDES", "HDL", "LDL", "VLDL",

	// Thyroid and endocrine
	"TSH", "T3", "T4", "FT3", "FT4", "HBA1C", "A1C", "INSULIN",
	"CORTISOL",

	// Iron studies and vitamins
	"IRON", "FERRITIN", "TIBC", "TRANSFERRIN", "B12", "FOLATE",
	"VITAMIN",

	// Coagulation and inflammation
	"PT", "PTT", "INR", "CRP", "URIC",
}
