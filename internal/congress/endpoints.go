// Package congress wraps the Congress.gov v3 REST API behind a cached client.
package congress

import (
	"fmt"
	"sort"
	"strings"
)

// TTL categories decide how long a cached response stays fresh. Search
// listings change as new records are published, entity lookups are
// effectively immutable over a session.
const (
	TTLList   = "list"
	TTLEntity = "entity"
)

// NeedMoreInfo is the sentinel endpoint name the planner returns when
// the question cannot be mapped to an API call without more detail.
const NeedMoreInfo = "need_more_info"

// Param documents one parameter of an endpoint for the planner prompt.
type Param struct {
	Name        string
	Description string
	Required    bool
}

// Endpoint describes one callable Congress.gov operation.
type Endpoint struct {
	Name         string
	Description  string
	PathTemplate string // placeholders like {congress} are path params
	Params       []Param
	TTLCategory  string
}

// RequiredParams returns the names of all required parameters.
func (e Endpoint) RequiredParams() []string {
	var req []string
	for _, p := range e.Params {
		if p.Required {
			req = append(req, p.Name)
		}
	}
	return req
}

// pathParams extracts the placeholder names from the path template.
func (e Endpoint) pathParams() []string {
	var names []string
	rest := e.PathTemplate
	for {
		i := strings.Index(rest, "{")
		if i < 0 {
			return names
		}
		j := strings.Index(rest[i:], "}")
		if j < 0 {
			return names
		}
		names = append(names, rest[i+1:i+j])
		rest = rest[i+j+1:]
	}
}

// Catalog is the fixed set of endpoints the planner can choose from.
var Catalog = []Endpoint{
	{
		Name:         "search_bills",
		Description:  "Search or list bills, optionally scoped to a congress. Use for questions about recent bills, bills on a topic, or legislative activity.",
		PathTemplate: "/bill",
		Params: []Param{
			{Name: "congress", Description: "congress number to scope the listing, e.g. 119"},
			{Name: "limit", Description: "max results to return, default 10"},
			{Name: "sort", Description: "sort order, e.g. updateDate+desc"},
		},
		TTLCategory: TTLList,
	},
	{
		Name:         "get_bill",
		Description:  "Fetch details of one specific bill. Requires the congress number, bill type (hr, s, hjres, sjres, hconres, sconres, hres, sres), and bill number.",
		PathTemplate: "/bill/{congress}/{billType}/{billNumber}",
		Params: []Param{
			{Name: "congress", Description: "congress number, e.g. 119", Required: true},
			{Name: "billType", Description: "bill type code in lowercase, e.g. hr or s", Required: true},
			{Name: "billNumber", Description: "bill number without prefix, e.g. 1234", Required: true},
		},
		TTLCategory: TTLEntity,
	},
	{
		Name:         "get_bill_summary",
		Description:  "Fetch the official summaries of one specific bill. Use when the user asks what a known bill does or says.",
		PathTemplate: "/bill/{congress}/{billType}/{billNumber}/summaries",
		Params: []Param{
			{Name: "congress", Description: "congress number, e.g. 119", Required: true},
			{Name: "billType", Description: "bill type code in lowercase, e.g. hr or s", Required: true},
			{Name: "billNumber", Description: "bill number without prefix, e.g. 1234", Required: true},
		},
		TTLCategory: TTLEntity,
	},
	{
		Name:         "search_members",
		Description:  "Search or list members of Congress, optionally filtered by state or current membership. Use for questions like who represents a state.",
		PathTemplate: "/member",
		Params: []Param{
			{Name: "stateCode", Description: "two-letter state code, e.g. CA"},
			{Name: "currentMember", Description: "true to restrict to currently serving members"},
			{Name: "limit", Description: "max results to return, default 10"},
		},
		TTLCategory: TTLList,
	},
	{
		Name:         "get_member",
		Description:  "Fetch details of one member of Congress by bioguide identifier. Only use when the bioguide id is known from earlier in the conversation.",
		PathTemplate: "/member/{bioguideId}",
		Params: []Param{
			{Name: "bioguideId", Description: "bioguide identifier, e.g. K000377", Required: true},
		},
		TTLCategory: TTLEntity,
	},
	{
		Name:         "search_amendments",
		Description:  "Search or list amendments, optionally scoped to a congress.",
		PathTemplate: "/amendment",
		Params: []Param{
			{Name: "congress", Description: "congress number to scope the listing"},
			{Name: "limit", Description: "max results to return, default 10"},
		},
		TTLCategory: TTLList,
	},
	{
		Name:         "get_amendment",
		Description:  "Fetch details of one specific amendment. Requires the congress number, amendment type (samdt or hamdt), and amendment number.",
		PathTemplate: "/amendment/{congress}/{amendmentType}/{amendmentNumber}",
		Params: []Param{
			{Name: "congress", Description: "congress number", Required: true},
			{Name: "amendmentType", Description: "amendment type code, samdt or hamdt", Required: true},
			{Name: "amendmentNumber", Description: "amendment number without prefix", Required: true},
		},
		TTLCategory: TTLEntity,
	},
	{
		Name:         "get_congress",
		Description:  "Fetch details about one congress session, such as its start and end dates.",
		PathTemplate: "/congress/{congress}",
		Params: []Param{
			{Name: "congress", Description: "congress number, e.g. 119", Required: true},
		},
		TTLCategory: TTLEntity,
	},
}

// Lookup finds an endpoint by name.
func Lookup(name string) (Endpoint, bool) {
	for _, e := range Catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Endpoint{}, false
}

// CatalogPrompt renders the catalog as prompt text for the planner.
func CatalogPrompt() string {
	var b strings.Builder
	for _, e := range Catalog {
		fmt.Fprintf(&b, "- %s: %s\n", e.Name, e.Description)
		params := append([]Param(nil), e.Params...)
		sort.Slice(params, func(i, j int) bool {
			if params[i].Required != params[j].Required {
				return params[i].Required
			}
			return params[i].Name < params[j].Name
		})
		for _, p := range params {
			req := "optional"
			if p.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "    %s (%s): %s\n", p.Name, req, p.Description)
		}
	}
	return b.String()
}
