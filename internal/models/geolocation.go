package models

const (
	YandexGeocoderURL      string = "https://geocode-maps.yandex.ru/v1/"
	NominatimSearchURL     string = "https://nominatim.openstreetmap.org/search"
	OpenrouteDirectionsURL string = "https://api.openrouteservice.org/v2/directions/foot-walking/json"
)

// Провайдеры геокодирования
const (
	GeocoderProviderYandex    = "yandex"
	GeocoderProviderNominatim = "nominatim"
)

type YandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// NominatimResponse - нужная часть ответа поиска OSM
type NominatimResponse struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type OpenrouteRequest struct {
	Coordinates  [][2]float64 `json:"coordinates"`
	Instructions bool         `json:"instructions"`
	Geometry     bool         `json:"geometry"`
}

type OpenrouteResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// GeoCache - закешированный результат геокодирования
type GeoCache struct {
	Query      string     `json:"query"`
	Coordinate Coordinate `json:"coordinate"`
}
