package cli

import (
	"fmt"

	"github.com/diillson/investment-analyzer-go/pkg/console"
	"github.com/diillson/investment-analyzer-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
  ___                     _                        _        _               _
 |_ _|_ ____   _____  ___| |_ _ __ ___   ___ _ __ | |_     / \   _ __   __ _| |_   _ _______ _ __
  | || '_ \ \ / / _ \/ __| __| '_ ' _ \ / _ \ '_ \| __|   / _ \ | '_ \ / _' | | | | |_  / _ \ '__|
  | || | | \ V /  __/\__ \ |_| | | | | |  __/ | | | |_   / ___ \| | | | (_| | | |_| |/ /  __/ |
 |___|_| |_|\_/ \___||___/\__|_| |_| |_|\___|_| |_|\__| /_/   \_\_| |_|\__,_|_|\__, /___\___|_|
                                                                               |___/
`
	fmt.Println(console.BoldRed(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(console.BrightBlue(fmt.Sprintf("Investment Analyzer CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
