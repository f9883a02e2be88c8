package config

// GameConfig holds the settings used when a new session is created
type GameConfig struct {
	// Name given to the player when none is supplied
	PlayerName string `mapstructure:"player_name" validate:"required"`

	// Starting balance of a new session
	StartingCredits float64 `mapstructure:"starting_credits" validate:"min=0"`

	// Seed for the mining random source; 0 picks a time-based seed
	Seed uint64 `mapstructure:"seed"`

	// Optional YAML files replacing the embedded world and shop tables
	WorldFile   string `mapstructure:"world_file"`
	CatalogFile string `mapstructure:"catalog_file"`
}
