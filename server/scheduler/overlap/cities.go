package overlap

// cityZone is one curated entry mapping a lowercase city key to its IANA
// zone and the display name used in table headers.
type cityZone struct {
	Zone  string
	Label string
}

// cityTable maps well-known business hubs to canonical zones. Keys are
// lowercase; lookups must lowercase the query first. The table is built
// once and never mutated after init.
var cityTable = map[string]cityZone{
	"new york":      {Zone: "America/New_York", Label: "New York"},
	"san francisco": {Zone: "America/Los_Angeles", Label: "San Francisco"},
	"los angeles":   {Zone: "America/Los_Angeles", Label: "Los Angeles"},
	"seattle":       {Zone: "America/Los_Angeles", Label: "Seattle"},
	"chicago":       {Zone: "America/Chicago", Label: "Chicago"},
	"austin":        {Zone: "America/Chicago", Label: "Austin"},
	"denver":        {Zone: "America/Denver", Label: "Denver"},
	"toronto":       {Zone: "America/Toronto", Label: "Toronto"},
	"vancouver":     {Zone: "America/Vancouver", Label: "Vancouver"},
	"mexico city":   {Zone: "America/Mexico_City", Label: "Mexico City"},
	"sao paulo":     {Zone: "America/Sao_Paulo", Label: "Sao Paulo"},
	"london":        {Zone: "Europe/London", Label: "London"},
	"dublin":        {Zone: "Europe/Dublin", Label: "Dublin"},
	"paris":         {Zone: "Europe/Paris", Label: "Paris"},
	"berlin":        {Zone: "Europe/Berlin", Label: "Berlin"},
	"amsterdam":     {Zone: "Europe/Amsterdam", Label: "Amsterdam"},
	"madrid":        {Zone: "Europe/Madrid", Label: "Madrid"},
	"zurich":        {Zone: "Europe/Zurich", Label: "Zurich"},
	"stockholm":     {Zone: "Europe/Stockholm", Label: "Stockholm"},
	"dubai":         {Zone: "Asia/Dubai", Label: "Dubai"},
	"mumbai":        {Zone: "Asia/Kolkata", Label: "Mumbai"},
	"bangalore":     {Zone: "Asia/Kolkata", Label: "Bangalore"},
	"singapore":     {Zone: "Asia/Singapore", Label: "Singapore"},
	"hong kong":     {Zone: "Asia/Hong_Kong", Label: "Hong Kong"},
	"shanghai":      {Zone: "Asia/Shanghai", Label: "Shanghai"},
	"beijing":       {Zone: "Asia/Shanghai", Label: "Beijing"},
	"seoul":         {Zone: "Asia/Seoul", Label: "Seoul"},
	"tokyo":         {Zone: "Asia/Tokyo", Label: "Tokyo"},
	"sydney":        {Zone: "Australia/Sydney", Label: "Sydney"},
	"melbourne":     {Zone: "Australia/Melbourne", Label: "Melbourne"},
}

// lookupCity returns the curated entry for a query, case-insensitively.
func lookupCity(query string) (cityZone, bool) {
	entry, ok := cityTable[normalizeCityKey(query)]
	return entry, ok
}
