package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/parcours/internal/config"
	"github.com/ytget/parcours/internal/controller"
	"github.com/ytget/parcours/internal/export"
	"github.com/ytget/parcours/internal/generate"
	"github.com/ytget/parcours/internal/mapview"
	"github.com/ytget/parcours/internal/notify"
	"github.com/ytget/parcours/internal/platform"
	"github.com/ytget/parcours/internal/tiles"
)

// Services are the collaborators the root UI drives
type Services struct {
	Generator generate.Generator
	Exporter  export.Exporter
	// Tiles may be nil, the map is then drawn without a base layer
	Tiles *tiles.Source
	Log   zerolog.Logger
}

type baseURLSetter interface {
	SetBaseURL(baseURL string)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	services     Services
	log          zerolog.Logger

	controller *controller.Controller

	title       *widget.Label
	form        *RouteFormView
	generateBtn *widget.Button
	spinner     *widget.ProgressBarInfinite
	errorView   *MessageView
	errorBanner *notify.Banner
	infoView    *MessageView
	infoBanner  *notify.Banner
	metrics     *MetricsPanel
	exportBtn   *widget.Button
	surface     *mapview.Surface
	mapWidget   *MapWidget

	loading bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, services Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		services:     services,
		log:          services.Log.With().Str("component", "ui").Logger(),
	}
	ui.controller = controller.New(services.Generator, services.Exporter, ui, services.Log)

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.log.Debug().Str("language", localization.GetCurrentLanguage()).Msg("UI initialized")
	return ui
}

// Controller returns the controller driven by the UI
func (ui *RootUI) Controller() *controller.Controller {
	return ui.controller
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.title = widget.NewLabelWithStyle(ui.localization.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, container.NewHBox(logoImage, ui.title), settingsBtn)
	} else {
		header = container.NewBorder(nil, nil, ui.title, settingsBtn)
	}

	ui.form = NewRouteFormView(ui.localization, ui.onGenerateClick)

	ui.generateBtn = widget.NewButton(ui.localization.GetText(KeyGenerate), ui.onGenerateClick)
	ui.generateBtn.Importance = widget.HighImportance
	ui.spinner = widget.NewProgressBarInfinite()
	ui.spinner.Stop()
	ui.spinner.Hide()

	ui.errorView = NewMessageView(IconError, withAlpha(ErrorRed, 0x40))
	ui.errorBanner = notify.NewBanner(ui.errorView)
	ui.infoView = NewMessageView(IconInfo, withAlpha(SuccessTeal, 0x40))
	ui.infoBanner = notify.NewBanner(ui.infoView)

	ui.metrics = NewMetricsPanel(ui.localization)

	ui.exportBtn = widget.NewButton(IconExport+" "+ui.localization.GetText(KeyExport), ui.onExportClick)
	ui.exportBtn.Hide()

	left := container.NewVBox(
		header,
		widget.NewSeparator(),
		ui.form.Container(),
		ui.mobile.TouchSized(ui.generateBtn),
		ui.spinner,
		ui.errorView.Container(),
		ui.metrics.Container(),
		ui.exportBtn,
		ui.infoView.Container(),
	)
	leftScroll := container.NewVScroll(container.NewPadded(left))
	leftScroll.SetMinSize(fyne.NewSize(FormMinWidth, 0))

	opts := mapview.DefaultOptions()
	opts.Tiles.URLTemplate = ui.settings.GetTileURLTemplate()
	opts.Log = ui.services.Log
	ui.surface = mapview.NewSurface(opts)

	var fetcher mapview.TileFetcher
	if ui.services.Tiles != nil {
		fetcher = ui.services.Tiles
	}
	ui.mapWidget = NewMapWidget(ui.surface, fetcher, ui.services.Log)

	ui.window.SetContent(ui.mobile.SplitLayout(leftScroll, ui.mapWidget))
}

func withAlpha(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.title.SetText(ui.localization.GetText(KeyAppTitle))
	ui.form.RefreshTexts()
	ui.metrics.RefreshTexts()
	ui.exportBtn.SetText(IconExport + " " + ui.localization.GetText(KeyExport))
	ui.setLoading(ui.loading)
}

// onGenerateClick submits the form. The request runs on its own goroutine
// and reports back through Apply.
func (ui *RootUI) onGenerateClick() {
	if ui.loading {
		return
	}
	form := ui.form.Values()

	go func() {
		err := ui.controller.Dispatch(context.Background(), controller.Submit{Form: form})
		if err != nil && !errors.Is(err, controller.ErrBusy) {
			ui.log.Error().Err(err).Msg("submit failed")
		}
	}()
}

// onExportClick saves the last generated route
func (ui *RootUI) onExportClick() {
	go func() {
		if err := ui.controller.Dispatch(context.Background(), controller.ExportRequested{}); err != nil {
			ui.log.Error().Err(err).Msg("export failed")
		}
	}()
}

// Apply implements controller.Presenter. Effects are applied on the UI goroutine.
func (ui *RootUI) Apply(effect controller.Effect) {
	fyne.Do(func() { ui.applyEffect(effect) })
}

func (ui *RootUI) applyEffect(effect controller.Effect) {
	switch e := effect.(type) {
	case controller.SetLoading:
		ui.setLoading(e.Loading)
	case controller.HideError:
		ui.errorBanner.Hide()
	case controller.ShowError:
		ui.errorBanner.Show(e.Message)
	case controller.RenderRoute:
		if err := ui.surface.RenderRoute(e.Route, e.StartAddress); err != nil {
			ui.log.Error().Err(err).Msg("route could not be drawn")
			ui.errorBanner.Show(controller.MessageGenericFailure)
		}
		ui.mapWidget.Redraw()
	case controller.ShowMetrics:
		ui.metrics.Render(e.Metrics, e.StartAddress)
		ui.exportBtn.Show()
	case controller.ArtifactExported:
		ui.onArtifactExported(e.Path)
	default:
		ui.log.Warn().Str("effect", effect.Type()).Msg("unhandled effect")
	}
}

// setLoading disables the submit button, swaps its label and runs the spinner
func (ui *RootUI) setLoading(loading bool) {
	ui.loading = loading
	if loading {
		ui.generateBtn.Disable()
		ui.generateBtn.SetText(ui.localization.GetText(KeyGenerating))
		ui.spinner.Show()
		ui.spinner.Start()
		return
	}
	ui.generateBtn.Enable()
	ui.generateBtn.SetText(ui.localization.GetText(KeyGenerate))
	ui.spinner.Stop()
	ui.spinner.Hide()
}

func (ui *RootUI) onArtifactExported(path string) {
	ui.infoBanner.Show(fmt.Sprintf("%s: %s", ui.localization.GetText(KeyRouteExported), path))

	if !ui.settings.GetAutoRevealOnExport() {
		return
	}
	// on phones the track is handed to a GPS app instead of a file manager
	reveal := platform.OpenFileInManager
	if ui.mobile.IsMobileDevice() {
		reveal = platform.OpenFileWithDefaultApp
	}
	go func() {
		if err := reveal(path); err != nil {
			ui.log.Warn().Err(err).Str("path", path).Msg("could not reveal exported file")
			ui.errorBanner.Show(fmt.Sprintf("%s: %v", ui.localization.GetText(KeyErrorOpeningFile), err))
		}
	}()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved pushes the stored settings into the running services
func (ui *RootUI) onSettingsSaved() {
	if setter, ok := ui.services.Generator.(baseURLSetter); ok {
		setter.SetBaseURL(ui.settings.GetAPIBaseURL())
	}
	ui.services.Exporter.SetDirectory(ui.settings.GetDownloadDirectory())
	if ui.services.Tiles != nil {
		ui.services.Tiles.SetTemplate(ui.settings.GetTileURLTemplate())
		ui.mapWidget.Redraw()
	}

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.onLanguageChange(lang)
	}

	ui.log.Info().
		Str("api_base_url", ui.settings.GetAPIBaseURL()).
		Str("download_directory", ui.settings.GetDownloadDirectory()).
		Msg("settings applied")
	ui.infoBanner.Show(ui.localization.GetText(KeySettingsSaved))
}
