package venue

import "github.com/pkordes/exam-tracker/internal/domain"

// Table returns a copy of the built-in venue table.
func Table() []domain.Venue {
	out := make([]domain.Venue, len(venues))
	copy(out, venues)
	return out
}

var venues = []domain.Venue{
	{
		Name:    "BoholIslandStateUniversity-CandijayCampus",
		Address: "Bohol Island State University Candijay Campus, Tagbilaran East Road, Poblacion, Candijay, Bohol, Central Visayas, 6312, Philippines",
		Lat:     9.83486805,
		Lng:     124.52998639604577,
	},
	{
		Name:    "BoholIslandStateUniversity-BalilihanCampus",
		Address: "Bohol Island State University - Balilihan Campus, Corella - Balilihan Road, Del Carmen Weste, Poblacion, Balilihan, Bohol, Central Visayas, Philippines",
		Lat:     9.7446957,
		Lng:     123.962162,
	},
	{
		Name:    "BoholIslandStateUniversity-BilarCampus",
		Address: "P495+6RF, Bilar, Bohol",
		Lat:     9.718288762783592,
		Lng:     124.10953433698481,
	},
	{
		Name:    "BoholIslandStateUniversity-BINGAG-DAUISCampus",
		Address: "JR32+GVM, Dauis - Panglao Rd, Dauis, Bohol",
		Lat:     9.604044356653406,
		Lng:     123.80222104253725,
	},
	{
		Name:    "BoholIslandStateUniversity-CalapeCampus",
		Address: "VVVJ+RXG, Calape, 6328 Bohol",
		Lat:     9.894687690448325,
		Lng:     123.88256918301862,
	},
	{
		Name:    "BoholIslandStateUniversity-CLARINCampus",
		Address: "X27F+CQ3, Clarin, Bohol",
		Lat:     9.963720190699068,
		Lng:     124.02443383419356,
	},
	{
		Name:    "FaraonNationalHighSchool-Jagna,Bohol",
		Address: "J8MW+823, Jagna, Bohol",
		Lat:     9.63346924137348,
		Lng:     124.34514915417864,
	},
	{
		Name:    "KatipunanNationalHighSchool-Carmen,Bohol",
		Address: "R6Q9+PVH, Carmen, Bohol",
		Lat:     9.839539081686855,
		Lng:     124.21975492349436,
	},
	{
		Name:    "SanJoseNationalHighSchool-Talibon,Bohol",
		Address: "48VC+G78, San Jose, Talibon, Bohol, San Jose Barangay Rd, Talibon, Bohol",
		Lat:     10.143972729160124,
		Lng:     124.32074733884302,
	},
	{
		Name:    "UbayNationalScienceHighSchool-Ubay,Bohol",
		Address: "2FWF+QVJ, E Aumentado Ave, Ubay, Bohol",
		Lat:     10.047120454674284,
		Lng:     124.47457192164639,
	},
}
