package cell

import "strings"

type carrierRoute struct {
	match    string
	template string
}

// Carrier lookup is ordered: "fed" must win before the store-brand ground
// alias, and both ground aliases route to UPS.
var carrierRoutes = []carrierRoute{
	{match: "fed", template: "https://www.fedex.com/apps/fedextrack/?action=track&trackingnumber=%s&cntry_code=us"},
	{match: "ups", template: "http://wwwapps.ups.com/WebTracking/track?track=yes&trackNums=%s&loc=en_us"},
	{match: "gro", template: "http://wwwapps.ups.com/WebTracking/track?track=yes&trackNums=%s&loc=en_us"},
	{match: "usps", template: "https://tools.usps.com/go/TrackConfirmAction?tLabels=%s"},
	{match: "spee", template: "http://packages.speedeedelivery.com/index.php?barcodes=%s"},
}

// TrackingURL resolves a carrier tracking link from a free-form service type.
// Matching is a case-insensitive substring test; an unrecognised carrier
// returns "".
func TrackingURL(serviceType, trackingNumber string) string {
	service := strings.ToLower(serviceType)
	for _, route := range carrierRoutes {
		if strings.Contains(service, route.match) {
			return strings.Replace(route.template, "%s", trackingNumber, 1)
		}
	}
	return ""
}

// PhoneHref normalises a phone number for a tel: link by stripping hyphens.
func PhoneHref(phone string) string {
	return strings.ReplaceAll(phone, "-", "")
}
