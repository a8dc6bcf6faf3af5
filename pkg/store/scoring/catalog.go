package scoring

import "github.com/de-tools/fleet-atlas/pkg/models/domain"

var catalog = map[domain.GoalType]domain.ScoringModel{
	domain.GoalSafety: {
		Goal:        domain.GoalSafety,
		Title:       "Safety Score",
		Formula:     "100 - Σ(event weight × events per 1,000 mi)",
		Description: "Penalizes risky driving behaviour reported by telematics, normalized by distance driven.",
		Events: []domain.ScoringEvent{
			{Name: "Collision", Weight: 25, Description: "Impact detected by the vehicle accelerometer."},
			{Name: "Speeding", Weight: 15, Description: "Travelling more than 10 mph above the posted limit."},
			{Name: "Harsh Braking", Weight: 12, Description: "Deceleration above 0.45 g."},
			{Name: "Distracted Driving", Weight: 18, Description: "Phone use or inattention flagged by the dash camera."},
			{Name: "Harsh Acceleration", Weight: 8, Description: "Acceleration above 0.40 g."},
			{Name: "Harsh Cornering", Weight: 10, Description: "Lateral force above 0.40 g."},
			{Name: "Seatbelt Violation", Weight: 6, Description: "Vehicle in motion with an unbuckled driver."},
		},
	},
	domain.GoalFuel: {
		Goal:        domain.GoalFuel,
		Title:       "Fuel Efficiency Score",
		Formula:     "actual MPG ÷ benchmark MPG × 100 - Σ(event weight × occurrences per 100 h)",
		Description: "Compares fleet fuel economy with the benchmark for each vehicle class and penalizes wasteful habits.",
		Events: []domain.ScoringEvent{
			{Name: "Excessive Idling", Weight: 20, Description: "Engine idling for more than five minutes."},
			{Name: "High RPM", Weight: 10, Description: "Engine speed above the efficient band."},
			{Name: "Aggressive Acceleration", Weight: 12, Description: "Repeated hard throttle input."},
			{Name: "Off-Route Miles", Weight: 8, Description: "Distance driven outside the planned route."},
			{Name: "Tire Pressure Low", Weight: 5, Description: "Tires below the recommended pressure."},
		},
	},
	domain.GoalMaintenance: {
		Goal:        domain.GoalMaintenance,
		Title:       "Maintenance Score",
		Formula:     "100 - Σ(event weight × open items per vehicle)",
		Description: "Tracks how current the fleet is on preventive maintenance and how many faults remain open.",
		Events: []domain.ScoringEvent{
			{Name: "Overdue Service", Weight: 20, Description: "Scheduled service past its due date or mileage."},
			{Name: "Check Engine Light", Weight: 15, Description: "Active diagnostic trouble code."},
			{Name: "Failed Inspection", Weight: 18, Description: "Defect recorded in a pre or post trip inspection."},
			{Name: "Battery Health", Weight: 7, Description: "Battery voltage below the healthy threshold."},
			{Name: "Brake Wear", Weight: 11, Description: "Brake pad wear sensor past its limit."},
		},
	},
	domain.GoalUtilization: {
		Goal:        domain.GoalUtilization,
		Title:       "Utilization Score",
		Formula:     "engine hours in use ÷ available hours × 100 - Σ(event weight × idle assets)",
		Description: "Measures how much of the available fleet capacity is productively used.",
		Events: []domain.ScoringEvent{
			{Name: "Unused Vehicle", Weight: 20, Description: "Vehicle not driven for seven consecutive days."},
			{Name: "Low Daily Hours", Weight: 12, Description: "Vehicle used less than two hours in a workday."},
			{Name: "After-Hours Use", Weight: 9, Description: "Vehicle driven outside scheduled shifts."},
			{Name: "Underloaded Trip", Weight: 10, Description: "Trip completed below 40 percent of payload capacity."},
			{Name: "Duplicate Route", Weight: 6, Description: "Two vehicles covering the same route on the same day."},
		},
	},
}
