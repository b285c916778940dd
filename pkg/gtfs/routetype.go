package gtfs

type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeBus       TransportType = "Bus"
	TransportTypeCoach     TransportType = "Coach"
	TransportTypeTram      TransportType = "Tram"
	TransportTypeRail      TransportType = "Rail"
	TransportTypeMetro     TransportType = "Metro"
	TransportTypeFerry     TransportType = "Ferry"
	TransportTypeCableCar  TransportType = "CableCar"
	TransportTypeFunicular TransportType = "Funicular"
	TransportTypeMonorail  TransportType = "Monorail"
	TransportTypeUnknown   TransportType = "UNKNOWN"
)

// RouteTypeMetro is the extended route type used for metro service
const RouteTypeMetro = 401

var routeTypeMapping = map[int]TransportType{
	0:  TransportTypeTram,
	1:  TransportTypeMetro,
	2:  TransportTypeRail,
	3:  TransportTypeBus,
	4:  TransportTypeFerry,
	5:  TransportTypeTram,
	6:  TransportTypeCableCar,
	7:  TransportTypeFunicular,
	11: TransportTypeBus,
	12: TransportTypeMonorail,
}

// TransportTypeOf maps both basic and extended (hundreds) route types
func TransportTypeOf(routeType int) TransportType {
	if transportType, exists := routeTypeMapping[routeType]; exists {
		return transportType
	}

	switch routeType / 100 {
	case 1:
		return TransportTypeRail
	case 2:
		return TransportTypeCoach
	case 4, 5, 6:
		return TransportTypeMetro
	case 7:
		return TransportTypeBus
	case 9:
		return TransportTypeTram
	case 10:
		return TransportTypeFerry
	case 13:
		return TransportTypeCableCar
	case 14:
		return TransportTypeFunicular
	default:
		return TransportTypeUnknown
	}
}
