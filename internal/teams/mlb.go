package teams

// MLB maps common club names to Baseball-Reference abbreviations.
var MLB = []Team{
	{Name: "Diamondbacks", Abbreviation: "ARI"},
	{Name: "Braves", Abbreviation: "ATL"},
	{Name: "Orioles", Abbreviation: "BAL"},
	{Name: "Red Sox", Abbreviation: "BOS"},
	{Name: "Cubs", Abbreviation: "CHC"},
	{Name: "White Sox", Abbreviation: "CHW"},
	{Name: "Reds", Abbreviation: "CIN"},
	{Name: "Guardians", Abbreviation: "CLE"},
	{Name: "Rockies", Abbreviation: "COL"},
	{Name: "Tigers", Abbreviation: "DET"},
	{Name: "Astros", Abbreviation: "HOU"},
	{Name: "Royals", Abbreviation: "KCR"},
	{Name: "Angels", Abbreviation: "LAA"},
	{Name: "Dodgers", Abbreviation: "LAD"},
	{Name: "Marlins", Abbreviation: "MIA"},
	{Name: "Brewers", Abbreviation: "MIL"},
	{Name: "Twins", Abbreviation: "MIN"},
	{Name: "Mets", Abbreviation: "NYM"},
	{Name: "Yankees", Abbreviation: "NYY"},
	{Name: "Athletics", Abbreviation: "ATH"},
	{Name: "Phillies", Abbreviation: "PHI"},
	{Name: "Pirates", Abbreviation: "PIT"},
	{Name: "Padres", Abbreviation: "SDP"},
	{Name: "Mariners", Abbreviation: "SEA"},
	{Name: "Giants", Abbreviation: "SFG"},
	{Name: "Cardinals", Abbreviation: "STL"},
	{Name: "Rays", Abbreviation: "TBR"},
	{Name: "Rangers", Abbreviation: "TEX"},
	{Name: "Blue Jays", Abbreviation: "TOR"},
	{Name: "Nationals", Abbreviation: "WSN"},
}
