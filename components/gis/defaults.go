package gis

const (
	// DefaultMapFolder is the qgis2web export served inside the map frame.
	DefaultMapFolder = "qgis2web_2025_12_08-16_09_36_742787"
	// PaymentStatusLayer switches markers to tax-status colors when on.
	PaymentStatusLayer = "paymentStatus"
)

// DefaultLayers returns the layers of the bundled map export, in panel order.
func DefaultLayers() []LayerDescriptor {
	return []LayerDescriptor{
		{ID: "layer__6", Name: "महानगरपालिकेचे सार्वजनिक शौचालय", NameLocalized: map[string]string{"en": "Municipal Public Toilets"}, Color: "#8d5a99", Category: CategoryPublicToilets},
		{ID: "layer__11", Name: "महानगरपालिकेचे रुग्णालय", NameLocalized: map[string]string{"en": "Municipal Hospitals"}, Color: "#f3a6b2", Category: CategoryHospital},
		{ID: "layer__10", Name: "महानगरपालिकेचे उद्यानबगीचे", NameLocalized: map[string]string{"en": "Municipal Gardens"}, Color: "#729b6f", Category: CategoryVacant},
		{ID: "layer__8", Name: "महानगरपालिकेची खुली जागा", NameLocalized: map[string]string{"en": "Municipal Open Spaces"}, Color: "#e77148", Category: CategoryVacant},
		{ID: "layer__9", Name: "महानगरपालिकेचची इमारती", NameLocalized: map[string]string{"en": "Municipal Buildings"}, Color: "#b7484b", Category: CategoryResidential},
		{ID: "layer__7", Name: "महानगरपालिकेची शाळा", NameLocalized: map[string]string{"en": "Municipal Schools"}, Color: "#d5b43c", Category: CategoryInstitutional},
		{ID: "layer_BuildingFootprints_5", Name: "Building Footprints", Color: "#ff0101", Category: CategoryBuildingFootprints},
		{ID: "layer_RESERVATION_4", Name: "Reservation", Color: "#b2df8a", Category: CategoryVacant},
		{ID: "layer_RESIDENTIAL_3", Name: "Residential", Color: "#fdbf6f", Category: CategoryResidential},
		{ID: "layer_ROAD_2", Name: "Road", Color: "#646464", Category: CategoryOther},
		{ID: "layer_ExistingLandUse_1", Name: "Existing Land Use", Color: "#e5b636", Category: CategoryOther},
		{ID: "layer_ProposeLandUse_0", Name: "Proposed Land Use", Color: "#e15989", Category: CategoryOther},
	}
}

// DefaultLayerWeights returns the KPI weight of each bundled layer.
func DefaultLayerWeights() LayerWeights {
	return LayerWeights{
		"layer__11":                  {Assets: 124, Movable: 45, Fixed: 79, Value: 1_250_000},
		"layer__10":                  {Assets: 18, Movable: 5, Fixed: 13, Value: 8_500_000},
		"layer__9":                   {Assets: 45, Movable: 0, Fixed: 45, Value: 4_200_000},
		"layer__8":                   {Assets: 320, Movable: 0, Fixed: 320, Value: 15_600_000},
		"layer__7":                   {Assets: 85, Movable: 20, Fixed: 65, Value: 24_500_000},
		"layer__6":                   {Assets: 56, Movable: 12, Fixed: 44, Value: 18_400_000},
		"layer_RESIDENTIAL_3":        {Assets: 540, Movable: 480, Fixed: 60, Value: 45_000_000},
		"layer_RESERVATION_4":        {Assets: 85, Movable: 0, Fixed: 85, Value: 12_000_000},
		"layer_ROAD_2":               {Assets: 120, Movable: 80, Fixed: 40, Value: 3_500_000},
		"layer_BuildingFootprints_5": {Assets: 850, Movable: 720, Fixed: 130, Value: 65_000_000},
		"layer_ExistingLandUse_1":    {Assets: 450, Movable: 200, Fixed: 250, Value: 28_000_000},
		"layer_ProposeLandUse_0":     {Assets: 180, Movable: 50, Fixed: 130, Value: 15_000_000},
	}
}

// MapFramePath is the iframe source for an export folder.
func MapFramePath(folder string) string {
	if folder == "" {
		folder = DefaultMapFolder
	}
	return "/" + folder + "/index.html"
}

var defaultRegistry = MustLayerRegistry(DefaultLayers())

// DefaultRegistry returns the shared registry of the bundled export.
func DefaultRegistry() *LayerRegistry {
	return defaultRegistry
}
