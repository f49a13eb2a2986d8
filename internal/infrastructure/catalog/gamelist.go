package catalog

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

const (
	gamelistFile = "gamelist.xml"

	gameListElement = "gameList"
	gameElement     = "game"
	nameElement     = "name"
	descElement     = "desc"
	pathElement     = "path"
)

// loadGamelist reads the EmulationStation gamelist.xml of a system directory
// and returns game descriptions keyed by filename stem. Frontends that
// scrape metadata leave these files next to the ROMs; a missing or
// unparseable gamelist just means no descriptions.
func loadGamelist(dir string) map[string]string {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(filepath.Join(dir, gamelistFile)); err != nil {
		return nil
	}

	root := doc.SelectElement(gameListElement)
	if root == nil {
		return nil
	}

	descriptions := make(map[string]string)
	for _, game := range root.SelectElements(gameElement) {
		descEl := game.FindElement(descElement)
		if descEl == nil || descEl.Text() == "" {
			continue
		}

		// Prefer the <path> stem: it matches the file on disk even when the
		// scraped <name> was prettified.
		if pathEl := game.FindElement(pathElement); pathEl != nil && pathEl.Text() != "" {
			base := path.Base(strings.ReplaceAll(pathEl.Text(), `\`, "/"))
			stem := strings.TrimSuffix(base, path.Ext(base))
			if stem != "" {
				descriptions[stem] = descEl.Text()
				continue
			}
		}
		if nameEl := game.FindElement(nameElement); nameEl != nil && nameEl.Text() != "" {
			descriptions[nameEl.Text()] = descEl.Text()
		}
	}
	return descriptions
}
