package gis

// DefaultProperties returns the marker map fixture.
func DefaultProperties() []PropertyRecord {
	return []PropertyRecord{
		{ID: "P001", Coords: LatLng{19.2183, 72.9781}, Ward: "ward1", Type: PropertyResidential, Status: TaxPaid, Address: "House 45, Sector A", Owner: "Rajesh Kumar", TaxAmount: "₹24,500", Area: "1200 sq ft"},
		{ID: "P002", Coords: LatLng{19.2193, 72.9791}, Ward: "ward1", Type: PropertyCommercial, Status: TaxPaid, Address: "Shop 12, MG Road", Owner: "Anita Desai", TaxAmount: "₹45,000", Area: "800 sq ft"},
		{ID: "P003", Coords: LatLng{19.2203, 72.9801}, Ward: "ward1", Type: PropertyResidential, Status: TaxPartial, Address: "Flat 301, Heights", Owner: "Vikram Singh", TaxAmount: "₹32,000", Area: "1400 sq ft"},
		{ID: "P004", Coords: LatLng{19.2213, 72.9811}, Ward: "ward2", Type: PropertyCommercial, Status: TaxPaid, Address: "Office 5A, Plaza", Owner: "Priya Sharma", TaxAmount: "₹52,000", Area: "1000 sq ft"},
		{ID: "P005", Coords: LatLng{19.2223, 72.9821}, Ward: "ward2", Type: PropertyResidential, Status: TaxOverdue1, Address: "Villa 89, Green Park", Owner: "Amit Patel", TaxAmount: "₹38,500", Area: "2000 sq ft"},
		{ID: "P006", Coords: LatLng{19.2233, 72.9831}, Ward: "ward2", Type: PropertyInstitutional, Status: TaxPaid, Address: "School Campus", Owner: "Education Board", TaxAmount: "₹75,000", Area: "5000 sq ft"},
		{ID: "P007", Coords: LatLng{19.2103, 72.9841}, Ward: "ward3", Type: PropertyResidential, Status: TaxPaid, Address: "House 56, Civil Lines", Owner: "Suresh Gupta", TaxAmount: "₹28,900", Area: "1300 sq ft"},
		{ID: "P008", Coords: LatLng{19.2093, 72.9851}, Ward: "ward3", Type: PropertyVacant, Status: TaxPaid, Address: "Plot 34, Zone B", Owner: "Ramesh Yadav", TaxAmount: "₹15,000", Area: "500 sq ft"},
		{ID: "P009", Coords: LatLng{19.2083, 72.9861}, Ward: "ward3", Type: PropertyCommercial, Status: TaxPartial, Address: "Shop 67, Market", Owner: "Kavita Reddy", TaxAmount: "₹41,200", Area: "900 sq ft"},
		{ID: "P010", Coords: LatLng{19.2073, 72.9871}, Ward: "ward4", Type: PropertyIndustrial, Status: TaxPaid, Address: "Factory Unit 12", Owner: "Deepak Joshi", TaxAmount: "₹95,000", Area: "8000 sq ft"},
		{ID: "P011", Coords: LatLng{19.2063, 72.9881}, Ward: "ward4", Type: PropertyResidential, Status: TaxOverdue3, Address: "House 78, Old City", Owner: "Meera Nair", TaxAmount: "₹22,000", Area: "1100 sq ft"},
		{ID: "P012", Coords: LatLng{19.2053, 72.9891}, Ward: "ward4", Type: PropertyCommercial, Status: TaxPaid, Address: "Mall Space 45A", Owner: "Ravi Verma", TaxAmount: "₹125,000", Area: "3000 sq ft"},
		{ID: "P013", Coords: LatLng{19.2243, 72.9771}, Ward: "ward5", Type: PropertyResidential, Status: TaxPaid, Address: "Bungalow 12, Enclave", Owner: "Sonia Mehta", TaxAmount: "₹48,500", Area: "2500 sq ft"},
		{ID: "P014", Coords: LatLng{19.2253, 72.9781}, Ward: "ward5", Type: PropertyInstitutional, Status: TaxPaid, Address: "Hospital Complex", Owner: "Health Dept", TaxAmount: "₹150,000", Area: "10000 sq ft"},
		{ID: "P015", Coords: LatLng{19.2263, 72.9791}, Ward: "ward5", Type: PropertyCommercial, Status: TaxOverdue1, Address: "Tower A, Business Park", Owner: "Vivek Pandey", TaxAmount: "₹85,000", Area: "2000 sq ft"},
		{ID: "P016", Coords: LatLng{19.2043, 72.9761}, Ward: "ward6", Type: PropertyResidential, Status: TaxPaid, Address: "Row House 34", Owner: "Anjali Verma", TaxAmount: "₹35,000", Area: "1500 sq ft"},
		{ID: "P017", Coords: LatLng{19.2033, 72.9771}, Ward: "ward6", Type: PropertyIndustrial, Status: TaxPaid, Address: "Warehouse 56", Owner: "Harish Industries", TaxAmount: "₹78,000", Area: "6000 sq ft"},
		{ID: "P018", Coords: LatLng{19.2023, 72.9781}, Ward: "ward6", Type: PropertyVacant, Status: TaxPaid, Address: "Land Parcel 890", Owner: "Rekha Jain", TaxAmount: "₹12,000", Area: "400 sq ft"},
		{ID: "P019", Coords: LatLng{19.2193, 72.9821}, Ward: "ward1", Type: PropertyInstitutional, Status: TaxPaid, Address: "Library Building", Owner: "Municipal Corp", TaxAmount: "₹45,000", Area: "3000 sq ft"},
		{ID: "P020", Coords: LatLng{19.2103, 72.9871}, Ward: "ward3", Type: PropertyIndustrial, Status: TaxPartial, Address: "Industrial Shed 23", Owner: "Manufacturing Ltd", TaxAmount: "₹68,000", Area: "5000 sq ft"},
		{ID: "P021", Coords: LatLng{19.2213, 72.9761}, Ward: "ward2", Type: PropertyResidential, Status: TaxPaid, Address: "Apartment 502", Owner: "Kiran Bhat", TaxAmount: "₹29,500", Area: "1250 sq ft"},
		{ID: "P022", Coords: LatLng{19.2093, 72.9801}, Ward: "ward4", Type: PropertyCommercial, Status: TaxOverdue1, Address: "Showroom 12A", Owner: "Auto Dealers", TaxAmount: "₹92,000", Area: "2500 sq ft"},
		{ID: "P023", Coords: LatLng{19.2233, 72.9861}, Ward: "ward5", Type: PropertyResidential, Status: TaxPaid, Address: "Duplex 67", Owner: "Arjun Iyer", TaxAmount: "₹42,000", Area: "1800 sq ft"},
		{ID: "P024", Coords: LatLng{19.2073, 72.9791}, Ward: "ward6", Type: PropertyCommercial, Status: TaxPaid, Address: "Restaurant Space", Owner: "Food Corp", TaxAmount: "₹55,000", Area: "1200 sq ft"},
	}
}

// DefaultWards returns the six wards with their boundary rectangles and collection figures.
func DefaultWards() []Ward {
	return []Ward{
		{ID: "ward1", Name: "Naupada", Zone: ZoneCentral, Color: "#3B82F6", Properties: 2840, Collected: 85, Target: 90, AvgTax: 48500, Defaulters: 425, Complaints: 34, NewAssessments: 156,
			Boundary: Rect(19.2125, 72.9750, 19.2230, 72.9875)},
		{ID: "ward2", Name: "Kopri", Zone: ZoneCentral, Color: "#8B5CF6", Properties: 3120, Collected: 78, Target: 90, AvgTax: 52300, Defaulters: 686, Complaints: 52, NewAssessments: 189,
			Boundary: Rect(19.2125, 72.9875, 19.2230, 73.0000)},
		{ID: "ward3", Name: "Vartak Nagar", Zone: ZoneCentral, Color: "#10B981", Properties: 2650, Collected: 82, Target: 90, AvgTax: 51200, Defaulters: 477, Complaints: 28, NewAssessments: 134,
			Boundary: Rect(19.2000, 72.9750, 19.2125, 72.9875)},
		{ID: "ward4", Name: "Wagle Estate", Zone: ZoneEast, Color: "#F59E0B", Properties: 4230, Collected: 88, Target: 90, AvgTax: 65400, Defaulters: 507, Complaints: 45, NewAssessments: 298,
			Boundary: Rect(19.2050, 72.9900, 19.2200, 73.0050)},
		{ID: "ward5", Name: "Ghodbunder", Zone: ZoneNorth, Color: "#EF4444", Properties: 3890, Collected: 76, Target: 90, AvgTax: 49800, Defaulters: 933, Complaints: 67, NewAssessments: 245,
			Boundary: Rect(19.2250, 72.9750, 19.2400, 73.0000)},
		{ID: "ward6", Name: "Majiwada", Zone: ZoneEast, Color: "#14B8A6", Properties: 2940, Collected: 81, Target: 90, AvgTax: 54100, Defaulters: 558, Complaints: 41, NewAssessments: 178,
			Boundary: Rect(19.1900, 73.0050, 19.2050, 73.0200)},
	}
}

// DefaultZones returns the five administrative zones.
func DefaultZones() []Zone {
	return []Zone{
		{ID: ZoneEast, Name: "East Zone", Color: "#10B981", Boundary: Rect(19.1900, 72.9900, 19.2200, 73.0200)},
		{ID: ZoneWest, Name: "West Zone", Color: "#3B82F6", Boundary: Rect(19.2100, 72.9500, 19.2400, 72.9750)},
		{ID: ZoneCentral, Name: "Central Zone", Color: "#8B5CF6", Boundary: Rect(19.2000, 72.9750, 19.2250, 73.0000)},
		{ID: ZoneNorth, Name: "North Zone", Color: "#F59E0B", Boundary: Rect(19.2250, 72.9750, 19.2400, 73.0000)},
		{ID: ZoneSouth, Name: "South Zone", Color: "#EF4444", Boundary: Rect(19.1900, 72.9900, 19.2000, 73.0200)},
	}
}

// MunicipalBoundary is the outer limit of the corporation.
var MunicipalBoundary = Rect(19.1900, 72.9500, 19.2400, 73.0200)

// TaxStatusCounts is the property count per status, with "all" as the total.
var TaxStatusCounts = map[TaxStatus]int{
	TaxStatusAll: 45320,
	TaxPaid:      35280,
	TaxPartial:   4820,
	TaxOverdue1:  3140,
	TaxOverdue3:  2080,
}
