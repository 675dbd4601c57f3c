package fleet

// Default is the two-unit plant: Unit 1 shreds then mills, Unit 2 runs a
// shredder/crusher tandem.
func Default() *Fleet {
	f, err := New(File{Units: []UnitSpec{
		{
			Unit:  "Unit1",
			Title: "Unit 1 Overview",
			Flow:  "Shredding (Prep) ➔ Milling (Finish)",
			Machines: []MachineSpec{
				{ID: "Shredder 1", Kind: "shredder", Stage: "Step 1: Shredders",
					Maintenance: &MaintenanceSpec{Next: "Blade Rotation", Due: "140 hrs", Spares: "OK"}},
				{ID: "Shredder 2", Kind: "shredder", Stage: "Step 1: Shredders",
					Maintenance: &MaintenanceSpec{Next: "Hardfacing", Due: "12 hrs", Spares: "OK"}},
				{ID: "Mill 1", Kind: "mill", Stage: "Step 2: Mills",
					Maintenance: &MaintenanceSpec{Next: "Greasing", Due: "4 hrs", Spares: "OK"}},
				{ID: "Mill 2", Kind: "mill", Stage: "Step 2: Mills",
					Maintenance: &MaintenanceSpec{Next: "Bearing Replacement", Due: "OVERDUE", Spares: "MISSING"}},
				{ID: "Mill 3", Kind: "mill", Stage: "Step 2: Mills",
					Maintenance: &MaintenanceSpec{Next: "Filter Change", Due: "200 hrs", Spares: "OK"}},
			},
		},
		{
			Unit:  "Unit2",
			Title: "Unit 2 Overview",
			Flow:  "Shredder ➔ Crusher Tandem",
			Machines: []MachineSpec{
				{ID: "Unit 2 Shredder", Kind: "shredder", Stage: "Primary",
					Maintenance: &MaintenanceSpec{Next: "Gear Oil", Due: "48 hrs", Spares: "LOW"}},
				{ID: "Unit 2 Crusher", Kind: "crusher", Stage: "Secondary",
					Maintenance: &MaintenanceSpec{Next: "Liner Check", Due: "72 hrs", Spares: "OK"}},
			},
		},
	}})
	if err != nil {
		panic("fleet: invalid default fleet: " + err.Error())
	}
	return f
}
