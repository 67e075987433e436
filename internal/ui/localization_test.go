package ui

import "testing"

func TestLocalizationDefaultsToFrench(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "fr" {
		t.Errorf("Expected default language fr, got %s", l.GetCurrentLanguage())
	}
	if text := l.GetText(KeyGenerate); text != "Générer le parcours" {
		t.Errorf("Unexpected generate label %q", text)
	}
	if text := l.GetText(KeyGenerating); text != "Génération en cours..." {
		t.Errorf("Unexpected generating label %q", text)
	}
}

func TestLocalizationSetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("en")
	if text := l.GetText(KeyGenerate); text != "Generate route" {
		t.Errorf("Unexpected english label %q", text)
	}

	// Unknown languages are ignored
	l.SetLanguage("de")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Unknown language should keep en, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "fr" {
		t.Errorf("System language should map to fr, got %s", l.GetCurrentLanguage())
	}

	if text := l.GetText("missing_key"); text != "missing_key" {
		t.Errorf("Missing keys should return the key, got %q", text)
	}
}

func TestLocalizationCompleteness(t *testing.T) {
	l := NewLocalization()

	for key := range l.texts["fr"] {
		if _, ok := l.texts["en"][key]; !ok {
			t.Errorf("Key %s has no english text", key)
		}
	}
	for lang := range l.GetAvailableLanguages() {
		if _, ok := l.texts[lang]; !ok {
			t.Errorf("Language %s is advertised but has no texts", lang)
		}
	}
}
