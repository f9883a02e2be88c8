package game

import (
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// CargoMap keys cargo units by resource display name ("Rare Earth": 4)
type CargoMap map[string]int

func toCargoMap(items []shared.CargoItem) CargoMap {
	cargo := make(CargoMap, len(items))
	for _, item := range items {
		cargo[item.Kind.DisplayName()] = item.Units
	}
	return cargo
}

// ShipDTO is a ship as seen by transports
type ShipDTO struct {
	Index            int      `json:"index"`
	Name             string   `json:"name"`
	CargoUsed        int      `json:"cargo_used"`
	CargoCapacity    int      `json:"cargo_capacity"`
	Cargo            CargoMap `json:"cargo"`
	MiningEfficiency float64  `json:"mining_efficiency"`
	Speed            float64  `json:"speed"`
	CurrentFuel      int      `json:"current_fuel"`
	FuelCapacity     int      `json:"fuel_capacity"`
	Active           bool     `json:"active"`
}

func ToShipDTO(v game.ShipView) ShipDTO {
	return ShipDTO{
		Index:            v.Index,
		Name:             v.Name,
		CargoUsed:        v.CargoUsed,
		CargoCapacity:    v.CargoCapacity,
		Cargo:            toCargoMap(v.Cargo),
		MiningEfficiency: v.MiningEfficiency,
		Speed:            v.Speed,
		CurrentFuel:      v.CurrentFuel,
		FuelCapacity:     v.FuelCapacity,
		Active:           v.Active,
	}
}

// StatusDTO is the status screen: player, location and active ship
type StatusDTO struct {
	SessionID        string   `json:"session_id"`
	Turn             int      `json:"turn"`
	PlayerName       string   `json:"player_name"`
	Credits          float64  `json:"credits"`
	Location         string   `json:"location"`
	LocationIndex    int      `json:"location_index"`
	ShipName         string   `json:"ship_name"`
	CargoUsed        int      `json:"cargo_used"`
	CargoCapacity    int      `json:"cargo_capacity"`
	CurrentFuel      int      `json:"current_fuel"`
	FuelCapacity     int      `json:"fuel_capacity"`
	MiningEfficiency float64  `json:"mining_efficiency"`
	Cargo            CargoMap `json:"cargo"`
	ActiveShipIndex  int      `json:"active_ship_index"`
	FleetSize        int      `json:"fleet_size"`
}

func ToStatusDTO(v game.StatusView) *StatusDTO {
	return &StatusDTO{
		SessionID:        v.SessionID,
		Turn:             v.Turn,
		PlayerName:       v.PlayerName,
		Credits:          v.Credits,
		Location:         v.Location,
		LocationIndex:    v.LocationIndex,
		ShipName:         v.Ship.Name,
		CargoUsed:        v.Ship.CargoUsed,
		CargoCapacity:    v.Ship.CargoCapacity,
		CurrentFuel:      v.Ship.CurrentFuel,
		FuelCapacity:     v.Ship.FuelCapacity,
		MiningEfficiency: v.Ship.MiningEfficiency,
		Cargo:            toCargoMap(v.Ship.Cargo),
		ActiveShipIndex:  v.ActiveShipIndex,
		FleetSize:        v.FleetSize,
	}
}

// LocationDTO describes the current body
type LocationDTO struct {
	Index            int      `json:"index"`
	Name             string   `json:"name"`
	Distance         float64  `json:"distance"`
	MiningDifficulty float64  `json:"mining_difficulty"`
	BodyType         string   `json:"body_type"`
	HasOutpost       bool     `json:"has_outpost"`
	OutpostName      string   `json:"outpost_name,omitempty"`
	OutpostType      string   `json:"outpost_type,omitempty"`
	HasShipShop      bool     `json:"has_ship_shop"`
	Resources        CargoMap `json:"resources"`
	ReferenceValue   float64  `json:"reference_value"`
}

func ToLocationDTO(v game.LocationView) *LocationDTO {
	return &LocationDTO{
		Index:            v.Index,
		Name:             v.Name,
		Distance:         v.Distance,
		MiningDifficulty: v.MiningDifficulty,
		BodyType:         v.Type,
		HasOutpost:       v.HasOutpost,
		OutpostName:      v.OutpostName,
		OutpostType:      v.OutpostType,
		HasShipShop:      v.HasShipShop,
		Resources:        toCargoMap(v.Resources),
		ReferenceValue:   v.ReferenceValue,
	}
}

// DestinationDTO is one entry of the travel menu
type DestinationDTO struct {
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	Distance     float64 `json:"distance"`
	BodyType     string  `json:"body_type"`
	FuelCost     int     `json:"fuel_cost"`
	CanTravel    bool    `json:"can_travel"`
	HasOutpost   bool    `json:"has_outpost"`
	OutpostName  string  `json:"outpost_name,omitempty"`
	HasShipShop  bool    `json:"has_ship_shop"`
	HasResources bool    `json:"has_resources"`
}

func ToDestinationDTOs(views []game.DestinationView) []DestinationDTO {
	dtos := make([]DestinationDTO, len(views))
	for i, v := range views {
		dtos[i] = DestinationDTO{
			Index:        v.Index,
			Name:         v.Name,
			Distance:     v.Distance,
			BodyType:     v.BodyType,
			FuelCost:     v.FuelCost,
			CanTravel:    v.CanTravel,
			HasOutpost:   v.HasOutpost,
			OutpostName:  v.OutpostName,
			HasShipShop:  v.HasShipShop,
			HasResources: v.HasResources,
		}
	}
	return dtos
}

// PriceLineDTO is one priced cargo line
type PriceLineDTO struct {
	Resource string  `json:"resource"`
	Amount   int     `json:"amount"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
}

// TradeQuoteDTO prices the active ship's cargo at the local outpost
type TradeQuoteDTO struct {
	Name         string         `json:"name"`
	OutpostType  string         `json:"outpost_type"`
	LocationName string         `json:"location_name"`
	CargoPrices  []PriceLineDTO `json:"cargo_prices"`
	TotalValue   float64        `json:"total_value"`
}

func ToTradeQuoteDTO(v *game.TradeQuoteView) *TradeQuoteDTO {
	dto := &TradeQuoteDTO{
		Name:         v.OutpostName,
		OutpostType:  v.OutpostType,
		LocationName: v.LocationName,
		CargoPrices:  []PriceLineDTO{},
		TotalValue:   v.Quote.Total,
	}
	for _, line := range v.Quote.Lines {
		dto.CargoPrices = append(dto.CargoPrices, PriceLineDTO{
			Resource: line.Kind.DisplayName(),
			Amount:   line.Amount,
			Price:    line.UnitPrice,
			Value:    line.Value,
		})
	}
	return dto
}

// ShopItemDTO is one purchasable catalog entry. Stats holds the bonus of an
// upgrade or the full profile of a ship.
type ShopItemDTO struct {
	Index       int                `json:"index"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Cost        float64            `json:"cost"`
	Stats       map[string]float64 `json:"stats"`
	Affordable  bool               `json:"affordable"`
}

// ShopDTO is the shop listing
type ShopDTO struct {
	Credits     float64       `json:"credits"`
	Upgrades    []ShopItemDTO `json:"upgrades"`
	Ships       []ShopItemDTO `json:"ships"`
	PlayerShips []string      `json:"player_ships"`
	CurrentShip string        `json:"current_ship"`
	HasShipShop bool          `json:"has_ship_shop"`
}

func profileStats(p *navigation.StatProfile) map[string]float64 {
	return map[string]float64{
		string(navigation.StatCargoCapacity):    float64(p.CargoCapacity),
		string(navigation.StatMiningEfficiency): p.MiningEfficiency,
		string(navigation.StatSpeed):            p.Speed,
		string(navigation.StatFuelCapacity):     float64(p.FuelCapacity),
	}
}

func toShopItemDTO(v game.ShopItemView) ShopItemDTO {
	dto := ShopItemDTO{
		Index:       v.Index,
		Name:        v.Name,
		Description: v.Description,
		Cost:        v.Cost,
		Affordable:  v.Affordable,
		Stats:       make(map[string]float64),
	}
	for stat, bonus := range v.Bonus {
		dto.Stats[string(stat)] = bonus
	}
	if v.Stats != nil {
		dto.Stats = profileStats(v.Stats)
	}
	return dto
}

func ToShopDTO(v game.ShopView) *ShopDTO {
	dto := &ShopDTO{
		Credits:     v.Credits,
		Upgrades:    make([]ShopItemDTO, 0, len(v.Upgrades)),
		Ships:       make([]ShopItemDTO, 0, len(v.Ships)),
		PlayerShips: v.PlayerShips,
		CurrentShip: v.CurrentShip,
		HasShipShop: v.HasShipShop,
	}
	for _, u := range v.Upgrades {
		dto.Upgrades = append(dto.Upgrades, toShopItemDTO(u))
	}
	for _, s := range v.Ships {
		dto.Ships = append(dto.Ships, toShopItemDTO(s))
	}
	return dto
}
