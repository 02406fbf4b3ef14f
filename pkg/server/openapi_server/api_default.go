package openapi_server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"GetCities",
			strings.ToUpper("Get"),
			"/cities",
			c.GetCities,
		},
		{
			"GetCityStations",
			strings.ToUpper("Get"),
			"/cities/{city}/stations",
			c.GetCityStations,
		},
		// registered before /stations/{code} so "nearest" is not taken for a code
		{
			"GetNearestStation",
			strings.ToUpper("Get"),
			"/stations/nearest",
			c.GetNearestStation,
		},
		{
			"GetStation",
			strings.ToUpper("Get"),
			"/stations/{code}",
			c.GetStation,
		},
		{
			"GetStatistics",
			strings.ToUpper("Get"),
			"/statistics",
			c.GetStatistics,
		},
		{
			"ComputeCityRoute",
			strings.ToUpper("Post"),
			"/routes/cities",
			c.ComputeCityRoute,
		},
		{
			"ComputeStationRoute",
			strings.ToUpper("Post"),
			"/routes/stations",
			c.ComputeStationRoute,
		},
		{
			"GetMetrics",
			strings.ToUpper("Get"),
			"/metrics",
			promhttp.Handler().ServeHTTP,
		},
	}
}

func (c *DefaultApiController) GetCities(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetCities(r.Context())
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func (c *DefaultApiController) GetCityStations(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	result, err := c.service.GetCityStations(r.Context(), city)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func (c *DefaultApiController) GetStation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	result, err := c.service.GetStation(r.Context(), code)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func (c *DefaultApiController) GetNearestStation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, err := parseFloatParameter(query.Get("lat"), "lat")
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	lon, err := parseFloatParameter(query.Get("lon"), "lon")
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	nearestQuery := NearestQuery{Lat: lat, Lon: lon}
	if err := AssertNearestQueryRequired(nearestQuery); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.GetNearestStation(r.Context(), nearestQuery)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func (c *DefaultApiController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	top := 10
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.errorHandler(w, r, &ParsingError{Err: err}, nil)
			return
		}
		top = n
	}
	result, err := c.service.GetStatistics(r.Context(), top)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ComputeCityRoute - Compute the best route between two cities
func (c *DefaultApiController) ComputeCityRoute(w http.ResponseWriter, r *http.Request) {
	cityRouteRequestParam := CityRouteRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&cityRouteRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertCityRouteRequestRequired(cityRouteRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeCityRoute(r.Context(), cityRouteRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ComputeStationRoute - Compute the route between two stations
func (c *DefaultApiController) ComputeStationRoute(w http.ResponseWriter, r *http.Request) {
	stationRouteRequestParam := StationRouteRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&stationRouteRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertStationRouteRequestRequired(stationRouteRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeStationRoute(r.Context(), stationRouteRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func parseFloatParameter(param string, name string) (float64, error) {
	if param == "" {
		return 0, &RequiredError{Field: name}
	}
	v, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return 0, &ParsingError{Err: err}
	}
	return v, nil
}
