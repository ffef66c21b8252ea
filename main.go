package main

import (
	"context"
	"embed"
	"runtime"

	"tslabel/app"
	"tslabel/app/settings"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Create an instance of the app structure
	appInstance := app.NewApp()
	settingsService := settings.NewSettingsService()
	// Inject the app so saved settings apply to the running project
	settingsService.SetChangeListener(appInstance)

	// emit forwards a menu click to the frontend, which calls back into the bound methods
	emit := func(event string) func(*menu.CallbackData) {
		return func(_ *menu.CallbackData) {
			if appInstance != nil {
				wruntime.EventsEmit(appInstance.Ctx(), event)
			}
		}
	}
	AppMenu := buildMenu(emit)

	// Get saved window size or use defaults
	width, height, err := appInstance.GetSavedWindowSize()
	if err != nil {
		println("Warning: Failed to get saved window size, using defaults:", err.Error())
		defaults := settings.Defaults()
		width, height = defaults.WindowWidth, defaults.WindowHeight
	}

	// Create application with options
	err = wails.Run(&options.App{
		Title:     "TSLabel",
		Width:     width,
		Height:    height,
		Menu:      AppMenu,
		MinWidth:  400,
		MinHeight: 300,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			appInstance.Startup(ctx)
			settingsService.Startup(ctx)
			// Ensure instance ID is generated on first startup
			if err := settingsService.EnsureInstanceID(); err != nil {
				println("Warning: Failed to generate instance ID:", err.Error())
			}
		},
		Bind: []interface{}{
			appInstance,
			settingsService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}

// buildMenu lays out the application menu. Every item emits a "menu:" event
// that the frontend handles.
func buildMenu(emit func(event string) func(*menu.CallbackData)) *menu.Menu {
	AppMenu := menu.NewMenu()
	if runtime.GOOS == "darwin" {
		AppMenu.Append(menu.AppMenu())
	}

	FileMenu := AppMenu.AddSubmenu("File")
	FileMenu.AddText("New Project", keys.CmdOrCtrl("n"), emit("menu:newProject"))
	FileMenu.AddText("Add Files", keys.CmdOrCtrl("o"), emit("menu:addFiles"))
	FileMenu.AddText("Add Folder", keys.Combo("o", keys.CmdOrCtrlKey, keys.ShiftKey), emit("menu:addFolder"))
	FileMenu.AddSeparator()
	FileMenu.AddText("Import Project", keys.CmdOrCtrl("i"), emit("menu:importProject"))
	FileMenu.AddText("Export Project", keys.CmdOrCtrl("s"), emit("menu:exportProject"))
	FileMenu.AddText("Export Labelled CSVs", keys.CmdOrCtrl("e"), emit("menu:exportCSVs"))
	FileMenu.AddSeparator()
	FileMenu.AddText("Settings", keys.CmdOrCtrl(","), emit("menu:settings"))

	EditMenu := AppMenu.AddSubmenu("Edit")
	EditMenu.AddText("Copy Current Row", keys.Combo("c", keys.CmdOrCtrlKey, keys.ShiftKey), emit("menu:copyRow"))
	EditMenu.AddText("Copy Chart Image", nil, emit("menu:copyChart"))
	EditMenu.AddText("Save Chart Image", nil, emit("menu:saveChart"))
	EditMenu.AddSeparator()
	EditMenu.AddText("Edit Labels", keys.CmdOrCtrl("l"), emit("menu:editLabels"))
	EditMenu.AddText("Clear Label", nil, emit("menu:clearLabel"))

	ViewMenu := AppMenu.AddSubmenu("View")
	ViewMenu.AddText("Toggle Hotkeys", keys.CmdOrCtrl("k"), emit("menu:toggleHotkeys"))
	ViewMenu.AddText("Toggle File List", keys.CmdOrCtrl("b"), emit("menu:toggleFiles"))
	ViewMenu.AddText("Toggle Console", keys.CmdOrCtrl("`"), emit("menu:toggleConsole"))

	HelpMenu := AppMenu.AddSubmenu("Help")
	HelpMenu.AddText("Shortcuts", nil, emit("menu:shortcuts"))
	HelpMenu.AddSeparator()
	HelpMenu.AddText("About", nil, emit("menu:about"))
	return AppMenu
}
