package style

// WithSubsectorCoordinates numbers hexes relative to their subsector.
func WithSubsectorCoordinates() Option {
	return func(s *Snapshot) { s.HexCoordinateStyle = HexCoordinateSubsector }
}

// WithAllHexesNumbered numbers every hex, not only those holding a world.
func WithAllHexesNumbered() Option {
	return func(s *Snapshot) { s.NumberAllHexes = true }
}

// WithoutParsecGrid hides the parsec grid.
func WithoutParsecGrid() Option {
	return func(s *Snapshot) { s.ParsecGrid.Visible = false }
}

// WithoutRoutes hides macro and micro routes.
func WithoutRoutes() Option {
	return func(s *Snapshot) {
		s.MacroRoutes.Visible = false
		s.MicroRoutes.Visible = false
	}
}

// WithoutRifts hides the rift overlay.
func WithoutRifts() Option {
	return func(s *Snapshot) { s.ShowRiftOverlay = false }
}

// WithPopulationOverlay circles worlds by population.
func WithPopulationOverlay() Option {
	return func(s *Snapshot) { s.PopulationOverlay.Visible = true }
}

// WithImportanceOverlay circles worlds by importance.
func WithImportanceOverlay() Option {
	return func(s *Snapshot) { s.ImportanceOverlay.Visible = true }
}

// WithCapitalOverlay marks capitals and important worlds.
func WithCapitalOverlay() Option {
	return func(s *Snapshot) { s.CapitalOverlay.Visible = true }
}

// WithStellarOverlay draws the primary stars of each system.
func WithStellarOverlay() Option {
	return func(s *Snapshot) { s.ShowStellarOverlay = true }
}

// WithDimUnofficial dims sectors without the Official tag.
func WithDimUnofficial() Option {
	return func(s *Snapshot) { s.DimUnofficialSectors = true }
}

// WithReviewStatus tints sectors by review tag.
func WithReviewStatus() Option {
	return func(s *Snapshot) { s.ColorCodeSectorStatus = true }
}

// WithDroyneWorlds marks Droyne and Chirper worlds.
func WithDroyneWorlds() Option {
	return func(s *Snapshot) { s.DroyneWorlds.Visible = true }
}

// WithMinorHomeworlds marks minor race homeworlds.
func WithMinorHomeworlds() Option {
	return func(s *Snapshot) { s.MinorHomeWorlds.Visible = true }
}

// WithAncientsWorlds marks Ancients sites.
func WithAncientsWorlds() Option {
	return func(s *Snapshot) { s.AncientsWorlds.Visible = true }
}

// WithHighlight circles the worlds matching p. A nil pattern disables the
// highlight overlay.
func WithHighlight(p *HighlightPattern) Option {
	return func(s *Snapshot) {
		s.HighlightPattern = p
		s.HighlightWorlds.Visible = p != nil
	}
}

// WithRouteEndAdjust sets how far route ends are pulled back from world
// centers, in parsecs.
func WithRouteEndAdjust(d float64) Option {
	return func(s *Snapshot) { s.RouteEndAdjust = d }
}
