package style

import "slices"

// LayerID identifies one step of the compositor.
type LayerID int

const (
	LayerBackgroundSolid LayerID = iota
	LayerBackgroundNebula
	LayerBackgroundGalaxy
	LayerBackgroundPseudoRandomStars
	LayerBackgroundRifts

	LayerMacroBorders
	LayerMacroRoutes

	LayerGridSector
	LayerGridSubsector
	LayerGridParsec

	LayerNamesSubsector

	LayerMicroBordersFill
	LayerMicroBordersShade
	LayerMicroBordersStroke
	LayerMicroRoutes
	LayerMicroBorderExplicitLabels

	LayerNamesSector

	LayerMacroNames
	LayerMacroCapitals
	LayerMegaLabels

	LayerWorldsBackground
	LayerWorldsForeground
	LayerWorldsOverlays

	LayerOverlayDroyneChirper
	LayerOverlayMinorHomeworlds
	LayerOverlayAncients
	LayerOverlayReviewStatus

	layerCount
)

var layerNames = [layerCount]string{
	"background.solid", "background.nebula", "background.galaxy", "background.stars", "background.rifts",
	"macro.borders", "macro.routes",
	"grid.sector", "grid.subsector", "grid.parsec",
	"names.subsector",
	"micro.borders.fill", "micro.borders.shade", "micro.borders.stroke", "micro.routes", "micro.borders.labels",
	"names.sector",
	"macro.names", "macro.capitals", "mega.labels",
	"worlds.background", "worlds.foreground", "worlds.overlays",
	"overlay.droyne", "overlay.minorhomeworlds", "overlay.ancients", "overlay.review",
}

func (l LayerID) String() string {
	if l < 0 || l >= layerCount {
		return "unknown"
	}
	return layerNames[l]
}

// defaultLayers returns the poster stacking order, bottom first.
func defaultLayers() []LayerID {
	out := make([]LayerID, layerCount)
	for i := range out {
		out[i] = LayerID(i)
	}
	return out
}

// moveAfter removes item and reinserts it just after target, or at the end
// if target is absent.
func moveAfter(layers []LayerID, target, item LayerID) []LayerID {
	if i := slices.Index(layers, item); i >= 0 {
		layers = slices.Delete(layers, i, i+1)
	}
	i := slices.Index(layers, target)
	if i < 0 {
		return append(layers, item)
	}
	return slices.Insert(layers, i+1, item)
}

// Layers returns the stacking order of the snapshot's theme, bottom first.
func (s *Snapshot) Layers() []LayerID { return slices.Clone(s.layers) }

// LayerIndex returns the position of id in the stacking order.
func (s *Snapshot) LayerIndex(id LayerID) int {
	if id < 0 || id >= layerCount {
		return -1
	}
	return s.layerOrder[id]
}
