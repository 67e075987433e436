package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeyStartLocation        = "start_location"
	KeyStartPlaceholder     = "start_placeholder"
	KeyDistance             = "distance"
	KeyTrainingType         = "training_type"
	KeyElevation            = "elevation"
	KeyAvoidBusyRoads       = "avoid_busy_roads"
	KeyPreferParks          = "prefer_parks"
	KeyGenerate             = "generate"
	KeyGenerating           = "generating"
	KeyExport               = "export"
	KeyMetrics              = "metrics"
	KeyMetricDistance       = "metric_distance"
	KeyMetricElevationGain  = "metric_elevation_gain"
	KeyMetricElevationLoss  = "metric_elevation_loss"
	KeyMetricDuration       = "metric_duration"
	KeyStartAddress         = "start_address"
	KeyRouteExported        = "route_exported"
	KeySettings             = "settings"
	KeyFile                 = "file"
	KeyLanguage             = "language"
	KeyServiceURL           = "service_url"
	KeyTileURL              = "tile_url"
	KeyDownloadDirectory    = "download_directory"
	KeyAutoReveal           = "auto_reveal"
	KeyLogLevel             = "log_level"
	KeySave                 = "save"
	KeyCancel               = "cancel"
	KeyBrowse               = "browse"
	KeySettingsSaved        = "settings_saved"
	KeyErrorOpeningFile     = "error_opening_file"
	KeyTrainingFractionne   = "training_fractionne"
	KeyTrainingEndurance    = "training_endurance"
	KeyTrainingTempo        = "training_tempo"
	KeyTrainingRecuperation = "training_recuperation"
	KeyElevationFlat        = "elevation_plat"
	KeyElevationHilly       = "elevation_vallonne"
	KeyElevationMountain    = "elevation_montagneux"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "fr",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to French for now
		lang = "fr"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to French
	if texts, exists := l.texts["fr"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"fr": "Français",
		"en": "English",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// French texts
	l.texts["fr"] = map[string]string{
		KeyAppTitle:             "Parcours",
		KeyStartLocation:        "Adresse de départ",
		KeyStartPlaceholder:     "Adresse, lieu ou monument",
		KeyDistance:             "Distance (km)",
		KeyTrainingType:         "Type d'entraînement",
		KeyElevation:            "Dénivelé",
		KeyAvoidBusyRoads:       "Éviter les routes fréquentées",
		KeyPreferParks:          "Privilégier les parcs",
		KeyGenerate:             "Générer le parcours",
		KeyGenerating:           "Génération en cours...",
		KeyExport:               "Télécharger le GPX",
		KeyMetrics:              "Métriques",
		KeyMetricDistance:       "Distance (km)",
		KeyMetricElevationGain:  "Dénivelé + (m)",
		KeyMetricElevationLoss:  "Dénivelé - (m)",
		KeyMetricDuration:       "Durée estimée (min)",
		KeyStartAddress:         "Départ",
		KeyRouteExported:        "Parcours enregistré",
		KeySettings:             "Paramètres",
		KeyFile:                 "Fichier",
		KeyLanguage:             "Langue",
		KeyServiceURL:           "Adresse du service",
		KeyTileURL:              "Modèle d'URL des tuiles",
		KeyDownloadDirectory:    "Dossier d'enregistrement",
		KeyAutoReveal:           "Afficher le fichier après l'export",
		KeyLogLevel:             "Niveau de journalisation",
		KeySave:                 "Enregistrer",
		KeyCancel:               "Annuler",
		KeyBrowse:               "Parcourir",
		KeySettingsSaved:        "Paramètres enregistrés",
		KeyErrorOpeningFile:     "Impossible d'ouvrir le fichier",
		KeyTrainingFractionne:   "Fractionné",
		KeyTrainingEndurance:    "Endurance",
		KeyTrainingTempo:        "Tempo",
		KeyTrainingRecuperation: "Récupération",
		KeyElevationFlat:        "Plat",
		KeyElevationHilly:       "Vallonné",
		KeyElevationMountain:    "Montagneux",
	}

	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:             "Parcours",
		KeyStartLocation:        "Start address",
		KeyStartPlaceholder:     "Address, place or landmark",
		KeyDistance:             "Distance (km)",
		KeyTrainingType:         "Training type",
		KeyElevation:            "Elevation",
		KeyAvoidBusyRoads:       "Avoid busy roads",
		KeyPreferParks:          "Prefer parks",
		KeyGenerate:             "Generate route",
		KeyGenerating:           "Generating...",
		KeyExport:               "Download GPX",
		KeyMetrics:              "Metrics",
		KeyMetricDistance:       "Distance (km)",
		KeyMetricElevationGain:  "Elevation gain (m)",
		KeyMetricElevationLoss:  "Elevation loss (m)",
		KeyMetricDuration:       "Estimated duration (min)",
		KeyStartAddress:         "Start",
		KeyRouteExported:        "Route saved",
		KeySettings:             "Settings",
		KeyFile:                 "File",
		KeyLanguage:             "Language",
		KeyServiceURL:           "Service address",
		KeyTileURL:              "Tile URL template",
		KeyDownloadDirectory:    "Download directory",
		KeyAutoReveal:           "Reveal file after export",
		KeyLogLevel:             "Log level",
		KeySave:                 "Save",
		KeyCancel:               "Cancel",
		KeyBrowse:               "Browse",
		KeySettingsSaved:        "Settings saved",
		KeyErrorOpeningFile:     "Error opening file",
		KeyTrainingFractionne:   "Intervals",
		KeyTrainingEndurance:    "Endurance",
		KeyTrainingTempo:        "Tempo",
		KeyTrainingRecuperation: "Recovery",
		KeyElevationFlat:        "Flat",
		KeyElevationHilly:       "Hilly",
		KeyElevationMountain:    "Mountainous",
	}
}
