package entities

import "time"

// PublicTankProfile is the read-only view of a shared tank, served by
// the remote service without authentication. It is assembled
// server-side; clients never construct one.
type PublicTankProfile struct {
	Name              string     `json:"name"`
	WaterType         WaterType  `json:"water_type"`
	AquariumSubtype   string     `json:"aquarium_subtype,omitempty"`
	Description       string     `json:"description,omitempty"`
	ImageURL          string     `json:"image_url,omitempty"`
	TotalVolumeLiters float64    `json:"total_volume_liters"`
	SetupDate         *time.Time `json:"setup_date,omitempty"`

	Livestock []PublicLivestockItem `json:"livestock,omitempty"`
	Events    []PublicEventItem     `json:"events,omitempty"`
	Photos    []PublicPhotoItem     `json:"photos,omitempty"`
	Lighting  []PublicLightingItem  `json:"lighting,omitempty"`
}

type PublicLivestockItem struct {
	SpeciesName string        `json:"species_name"`
	CommonName  string        `json:"common_name,omitempty"`
	Type        LivestockType `json:"type"`
	Quantity    int           `json:"quantity"`
	AddedDate   *time.Time    `json:"added_date,omitempty"`
}

type PublicEventItem struct {
	Title     string    `json:"title"`
	EventDate time.Time `json:"event_date"`
	EventType string    `json:"event_type,omitempty"`
}

type PublicPhotoItem struct {
	ID        string     `json:"id"`
	Caption   string     `json:"caption,omitempty"`
	TakenDate *time.Time `json:"taken_date,omitempty"`
}

type PublicLightingItem struct {
	Name         string        `json:"name"`
	Channels     LightChannels `json:"channels"`
	ScheduleData IntensityMap  `json:"schedule_data"`
}
