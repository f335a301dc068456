package config

const (
	defaultConfigPath         = "~/.config/admissions/config.toml"
	projectConfigName         = "admissions.toml"
	ledgerFileName            = "ledger.db"
	defaultLedgerDir          = "~/.local/share/admissions"
	defaultLogDir             = "~/.local/share/admissions/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMinNameLength      = 4
	defaultMaxNameLength      = 150
	defaultMaxDigitRatio      = 0.4
	defaultMinDistinctLetters = 3
	defaultRepetitionLetters  = 6
	defaultNameOnlyConfidence = 0.5
	defaultHTMLStatsConf      = 0.8
	defaultPDFStatsConf       = 0.9
	defaultYearFallbackWindow = 1
	defaultTargetYearWeight   = 50
	defaultPreviousYearWeight = 10
	defaultHighValueWeight    = 30
	defaultLowValueWeight     = 5
	defaultNegativeWeight     = -20
	defaultSimilarity         = 0.82
	defaultWorkers            = 4

	// TargetYearEnv overrides a zero ranking.target_year.
	TargetYearEnv = "ADMISSIONS_TARGET_YEAR"
)

// DefaultDenylist lists administrative and navigational terms that never name
// a study program.
func DefaultDenylist() []string {
	return []string{
		"admitere",
		"anunt",
		"anunturi",
		"burse",
		"calendar",
		"calendarul",
		"cazare",
		"confirmare",
		"contact",
		"copie",
		"ghid",
		"ghidul",
		"inscriere",
		"inscrieri",
		"metodologie",
		"metodologia",
		"orar",
		"regulament",
		"rezultate",
		"secretariat",
		"semnatura",
		"taxe",
		"total",
		"tutorial",
	}
}

// DefaultLoadBearingParams lists query parameters that select page content.
func DefaultLoadBearingParams() []string {
	return []string{"page", "p", "pagina", "page_id", "id"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LedgerDir: defaultLedgerDir,
			LogDir:    defaultLogDir,
		},
		Validation: Validation{
			Denylist:             DefaultDenylist(),
			MinNameLength:        defaultMinNameLength,
			MaxNameLength:        defaultMaxNameLength,
			MaxDigitRatio:        defaultMaxDigitRatio,
			MinDistinctLetters:   defaultMinDistinctLetters,
			RepetitionMinLetters: defaultRepetitionLetters,
			NameOnlyConfidence:   defaultNameOnlyConfidence,
			HTMLStatsConfidence:  defaultHTMLStatsConf,
			PDFStatsConfidence:   defaultPDFStatsConf,
		},
		Ranking: Ranking{
			YearFallbackWindow: defaultYearFallbackWindow,
			YearStrict:         true,
			TargetYearWeight:   defaultTargetYearWeight,
			PreviousYearWeight: defaultPreviousYearWeight,
			HighValueWeight:    defaultHighValueWeight,
			LowValueWeight:     defaultLowValueWeight,
			NegativeWeight:     defaultNegativeWeight,
			HighValueKeywords:  []string{"cifra de scolarizare", "cifra", "locuri", "capacitate", "scolarizare"},
			LowValueKeywords:   []string{"metodologie", "metodologia", "ghid", "regulament"},
			NegativeKeywords:   []string{"tematica", "subiecte", "grile", "bibliografie", "disciplina"},
		},
		Fusion: Fusion{
			SimilarityThreshold: defaultSimilarity,
			Workers:             defaultWorkers,
		},
		Identity: Identity{
			LoadBearingParams: DefaultLoadBearingParams(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
