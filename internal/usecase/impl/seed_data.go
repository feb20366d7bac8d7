package impl

import "helios/internal/domain/entity"

// seedProducts returns the built-in catalog. The seed operation overwrites by
// ID, so re-seeding restores any edited entry to this baseline.
func seedProducts() []*entity.Product {
	return []*entity.Product{
		{
			ID:                 "1kva-inverter-bundle",
			Title:              "1kVA Inverter",
			Price:              980000,
			PriceWithoutPanels: 710000,
			Category:           entity.CategorySolar,
			Description:        "Compact power solution for basics.",
			Usage:              "Fan, light, Tv, socket for charging phones and laptops",
			Components: []string{
				"220ah battery",
				"PWM charge controller",
				"(2) 320W Solar panels",
			},
			Stock:        10,
			ImageURL:     "/images/1kva-inverter.png",
			LoadCapacity: "1KVA",
		},
		{
			ID:                 "2.5kva-inverter-bundle",
			Title:              "2.5kVA Inverter",
			Price:              1950000,
			PriceWithoutPanels: 1300000,
			Category:           entity.CategorySolar,
			Description:        "Standard home power solution.",
			Usage:              "Fan, light, Tv, blender, freezer, soundbar, washing machine, socket for charging laptop/phones",
			Components: []string{
				"(2) 220ah batteries",
				"60amps MPPT charge controller",
				"(4) 320W solar panels",
			},
			Stock:        5,
			ImageURL:     "/images/2.5kva-inverter.png",
			LoadCapacity: "2.5KVA",
			IsFeatured:   true,
		},
		{
			ID:                 "3.5kva-inverter-bundle",
			Title:              "3.5kVA Inverter",
			Price:              3600000,
			PriceWithoutPanels: 2200000,
			Category:           entity.CategorySolar,
			Description:        "Heavy duty power solution.",
			Usage:              "TV, Standing fan, 1hp AC, Blender, Soundbar, Freezer, Washing Machine, Lights, Sockets for charging phones",
			Components: []string{
				"(4) 220AH tubular batteries",
				"(12) 320W solar panels",
				"MPPT charge controller",
			},
			Stock:        3,
			ImageURL:     "/images/3.5kva-inverter.png",
			LoadCapacity: "3.5KVA",
		},
		{
			ID:                 "5kva-inverter-system",
			Title:              "5kVA Inverter System",
			Price:              5800000,
			PriceWithoutPanels: 3600000,
			Category:           entity.CategorySolar,
			Description:        "Advanced capacity for larger homes. Powers multiple ACs, Freezers, and heavy appliances.",
			Usage:              "Multiple ACs, Freezers, Pumping Machines, Heavy Appliances",
			Components: []string{
				"10kWh Lithium Battery",
				"12x 400W Solar Panels",
				"MPPT Charge Controller",
				"Installation Included",
			},
			Stock:        6,
			ImageURL:     "/images/5kva-inverter.png",
			Badge:        "Premium",
			LoadCapacity: "5kVA",
			IsFeatured:   true,
		},
		{
			ID:                 "7.5kva-inverter-system",
			Title:              "7.5kVA Inverter System",
			Price:              6400000,
			PriceWithoutPanels: 3900000,
			Category:           entity.CategorySolar,
			Description:        "High capacity system for luxury homes and large offices.",
			Usage:              "Central ACs, Industrial Pumps, Office Buildings, Large Homes",
			Components: []string{
				"10kWh Lithium Battery",
				"16x 400W Solar Panels",
				"MPPT Charge Controller",
				"Installation Included",
			},
			Stock:        5,
			ImageURL:     "/images/7.5kva-inverter.png",
			Badge:        "Premium",
			LoadCapacity: "7.5kVA",
			IsFeatured:   true,
		},
		{
			ID:                 "10kva-inverter-system",
			Title:              "10kVA Inverter System",
			Price:              11000000,
			PriceWithoutPanels: 7500000,
			Category:           entity.CategorySolar,
			Description:        "Industrial grade power solution for estates and commercial use.",
			Usage:              "Estate Infrastructure, Commercial Plazas, Factory Equipment",
			Components: []string{
				"2 x 10kWh Lithium Battery",
				"16x 400W Solar Panels",
				"MPPT Charge Controller",
				"Installation Included",
			},
			Stock:        5,
			ImageURL:     "/images/10kva-inverter.png",
			Badge:        "Premium",
			LoadCapacity: "10kVA",
			IsFeatured:   true,
		},
		{
			ID:          "starlink-installation",
			Title:       "Starlink Installation",
			Price:       650000,
			Category:    entity.CategoryStarlink,
			Description: "Bringing You Reliable High-Speed Internet, Anywhere.",
			Usage:       "High-speed internet for rural and urban areas",
			Components: []string{
				"Starlink Satellite Kit",
				"Professional Mounting",
				"Router Setup",
				"App Configuration",
			},
			Stock:    20,
			ImageURL: "/images/starlink-installation.png",
			Badge:    "Hot",
		},
		{
			ID:          "cctv-installation",
			Title:       "CCTV Installation",
			Price:       450000,
			Category:    entity.CategoryCCTV,
			Description: "Protect What Matters Most with Advanced Surveillance Solutions.",
			Usage:       "24/7 Surveillance for home or business",
			Components: []string{
				"HD Cameras",
				"DVR/NVR System",
				"Remote Viewing App",
				"Installation & Cabling",
			},
			Stock:    15,
			ImageURL: "/images/cctv-installation.png",
		},
	}
}
