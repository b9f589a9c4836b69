package backend

// Mode selects which adapter set serves the process. It is read once at
// startup and never re-evaluated.
type Mode string

const (
	// ModeLocal runs against the embedded SQLite store.
	ModeLocal Mode = "local"
	// ModeRemote runs against the HTTP API.
	ModeRemote Mode = "remote"
)

// Backend is the resolved adapter set: one binding per entity. It is
// constructed exactly once per process by the binding layer and passed
// down explicitly; nothing mutates it afterwards.
type Backend struct {
	Mode Mode

	Tanks       TankStore
	Notes       NoteStore
	Livestock   LivestockStore
	Equipment   EquipmentStore
	Consumables ConsumableStore
	ICPTests    ICPTestStore
	Lighting    LightingStore
	Maintenance MaintenanceStore
	Parameters  ParameterStore
	Feeding     FeedingStore
	Finances    FinanceStore
	Photos      PhotoStore

	// Share is bound to the remote adapter in both modes; public
	// profiles require no authentication and are never stored
	// on-device.
	Share ShareStore

	Admin AdminStore
}
