package plugin

import "time"

// Names of the example plugins seeded on first load.
const (
	SeedWelcomeName = "welcome"
	SeedCounterName = "counter"
)

const seedWelcomeSource = `register({
    render = function(surface)
        surface.set_line(1, "Welcome to scriptdeck")
        surface.set_line(2, "Plugins are small Lua programs.")
        surface.set_line(3, "Edit this one to make it your own.")
    end,
})
`

const seedCounterSource = `local visits = (host.get("counter.visits") or 0) + 1
host.set("counter.visits", visits)

register({
    render = function(surface)
        surface.set_line(1, "Session count: " .. visits)
    end,
})
`

// defaultDefinitions builds the example plugins installed on first-ever
// library load.
func defaultDefinitions(now time.Time, newID func() string) []Definition {
	return []Definition{
		{
			ID:       newID(),
			Name:     SeedWelcomeName,
			Source:   seedWelcomeSource,
			Enabled:  true,
			EditedAt: now,
		},
		{
			ID:       newID(),
			Name:     SeedCounterName,
			Source:   seedCounterSource,
			Enabled:  true,
			EditedAt: now,
		},
	}
}
