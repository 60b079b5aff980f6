package catalog

import "github.com/diewo77/bougeotte/internal/models"

// Static reference catalog. This is product data, not user data: it only
// changes with a release, so it lives in code and is seeded into the
// database at boot for querying alongside the rest of the schema.

var Categories = []models.Categorie{
	{ID: "banque", Label: "Banques", Icon: "🏦", Color: "#6366f1", Position: 1},
	{ID: "assurance", Label: "Assurances & mutuelles", Icon: "🛡️", Color: "#8b5cf6", Position: 2},
	{ID: "energie", Label: "Énergie & eau", Icon: "⚡", Color: "#f59e0b", Position: 3},
	{ID: "telecom", Label: "Internet & téléphonie", Icon: "📡", Color: "#06b6d4", Position: 4},
	{ID: "administration", Label: "Administrations", Icon: "🏛️", Color: "#10b981", Position: 5},
	{ID: "sante", Label: "Santé", Icon: "🩺", Color: "#ef4444", Position: 6},
	{ID: "emploi", Label: "Emploi & retraite", Icon: "💼", Color: "#f97316", Position: 7},
	{ID: "transport", Label: "Transports", Icon: "🚆", Color: "#3b82f6", Position: 8},
	{ID: "logement", Label: "Logement", Icon: "🏠", Color: "#a78bfa", Position: 9},
	{ID: "autre", Label: "Autres services", Icon: "📦", Color: "#64748b", Position: 10},
}

var Organismes = []models.Organisme{
	// Banques
	{ID: "bnp", Nom: "BNP Paribas", CategorieID: "banque", Type: "courrier", Populaire: true,
		Adresse: "BNP Paribas\nService Relations Clients\nTSA 30455\n75450 Paris Cedex 09"},
	{ID: "credit-agricole", Nom: "Crédit Agricole", CategorieID: "banque", Type: "courrier",
		Adresse: "Crédit Agricole\nService Clients\nVotre caisse régionale",
		Note:    "Adressez le courrier à votre caisse régionale, indiquée sur vos relevés."},
	{ID: "societe-generale", Nom: "Société Générale", CategorieID: "banque", Type: "courrier",
		Adresse: "Société Générale\nService Relations Clientèle\nTSA 60004\n92595 Levallois-Perret Cedex"},
	{ID: "banque-postale", Nom: "La Banque Postale", CategorieID: "banque", Type: "courrier", Populaire: true,
		Adresse: "La Banque Postale\nService Relations Clients\n115 rue de Sèvres\n75275 Paris Cedex 06"},
	{ID: "boursorama", Nom: "BoursoBank", CategorieID: "banque", Type: "email",
		Email: "contact@boursobank.com",
		Note:  "La modification est aussi possible directement depuis votre espace client en ligne."},

	// Assurances & mutuelles
	{ID: "maif", Nom: "MAIF", CategorieID: "assurance", Type: "courrier", Populaire: true,
		Adresse: "MAIF\n200 avenue Salvador Allende\nCS 90000\n79038 Niort Cedex 9",
		Note:    "Pensez à faire établir une nouvelle attestation d'assurance habitation pour le nouveau logement."},
	{ID: "macif", Nom: "Macif", CategorieID: "assurance", Type: "courrier",
		Adresse: "Macif\n1 rue Jacques Vandier\n79000 Niort"},
	{ID: "axa", Nom: "AXA France", CategorieID: "assurance", Type: "courrier",
		Adresse: "AXA France\nService Relations Clients\nTSA 46 307\n95901 Cergy-Pontoise Cedex 9"},
	{ID: "harmonie-mutuelle", Nom: "Harmonie Mutuelle", CategorieID: "assurance", Type: "email",
		Email: "contact@harmonie-mutuelle.fr"},

	// Énergie & eau
	{ID: "edf", Nom: "EDF", CategorieID: "energie", Type: "courrier", Populaire: true,
		Adresse: "EDF Service Clients\nTSA 20012\n41975 Blois Cedex 9",
		Note:    "Relevez les compteurs le jour du déménagement pour la facture de clôture."},
	{ID: "engie", Nom: "Engie", CategorieID: "energie", Type: "courrier", Populaire: true,
		Adresse: "ENGIE\nTSA 87494\n76934 Rouen Cedex 09"},
	{ID: "totalenergies", Nom: "TotalEnergies", CategorieID: "energie", Type: "email",
		Email: "clients@totalenergies.fr"},
	{ID: "veolia-eau", Nom: "Veolia Eau", CategorieID: "energie", Type: "courrier",
		Adresse: "Veolia Eau\nService Clients\nTSA 70121\n37911 Tours Cedex 9",
		Note:    "Le contrat d'eau dépend de la commune : vérifiez le distributeur de votre nouveau logement."},

	// Internet & téléphonie
	{ID: "orange", Nom: "Orange", CategorieID: "telecom", Type: "courrier", Populaire: true,
		Adresse: "Orange Service Clients\n33734 Bordeaux Cedex 9",
		Note:    "Testez l'éligibilité fibre de la nouvelle adresse avant de demander le transfert de ligne."},
	{ID: "sfr", Nom: "SFR", CategorieID: "telecom", Type: "courrier",
		Adresse: "SFR Service Clients\nTSA 73917\n62978 Arras Cedex 9"},
	{ID: "free", Nom: "Free", CategorieID: "telecom", Type: "courrier", Populaire: true,
		Adresse: "Free\n75371 Paris Cedex 08"},
	{ID: "bouygues-telecom", Nom: "Bouygues Telecom", CategorieID: "telecom", Type: "courrier",
		Adresse: "Bouygues Telecom\nService Clients\nTSA 59013\n60643 Chantilly Cedex"},

	// Administrations
	{ID: "impots", Nom: "Centre des impôts", CategorieID: "administration", Type: "email", Populaire: true,
		Email: "contact@dgfip.finances.gouv.fr",
		Note:  "La déclaration en ligne sur impots.gouv.fr (rubrique « Gérer mon profil ») est la voie la plus rapide."},
	{ID: "caf", Nom: "CAF", CategorieID: "administration", Type: "courrier", Populaire: true,
		Adresse: "CAF\nVotre caisse départementale",
		Note:    "Le changement de situation doit être déclaré sous 30 jours ; il peut modifier vos droits."},
	{ID: "service-cartes-grises", Nom: "ANTS — Carte grise", CategorieID: "administration", Type: "email",
		Email: "contact@ants.gouv.fr",
		Note:  "Le changement d'adresse sur la carte grise est obligatoire dans le mois suivant le déménagement."},
	{ID: "mairie", Nom: "Mairie (listes électorales)", CategorieID: "administration", Type: "courrier",
		Adresse: "Mairie de votre nouvelle commune\nService des élections",
		Note:    "Joignez un justificatif de domicile de moins de trois mois."},

	// Santé
	{ID: "cpam", Nom: "CPAM (Assurance Maladie)", CategorieID: "sante", Type: "courrier", Populaire: true,
		Adresse: "CPAM\nVotre caisse départementale",
		Note:    "Mise à jour également possible depuis votre compte ameli."},
	{ID: "medecin-traitant", Nom: "Médecin traitant", CategorieID: "sante", Type: "courrier",
		Adresse: ""},

	// Emploi & retraite
	{ID: "france-travail", Nom: "France Travail", CategorieID: "emploi", Type: "email", Populaire: true,
		Email: "contact@francetravail.fr",
		Note:  "Un changement de région peut entraîner un changement d'agence de rattachement."},
	{ID: "employeur", Nom: "Employeur (service RH)", CategorieID: "emploi", Type: "email",
		Email: ""},
	{ID: "carsat", Nom: "CARSAT (retraite)", CategorieID: "emploi", Type: "courrier",
		Adresse: "CARSAT\nVotre caisse régionale"},

	// Transports
	{ID: "sncf-connect", Nom: "SNCF Connect", CategorieID: "transport", Type: "email",
		Email: "serviceclient@sncf-connect.com"},
	{ID: "navigo", Nom: "Île-de-France Mobilités (Navigo)", CategorieID: "transport", Type: "courrier",
		Adresse: "Agence Navigo\nTSA 32749\n77214 Avon Cedex"},

	// Logement
	{ID: "proprietaire", Nom: "Propriétaire / bailleur", CategorieID: "logement", Type: "courrier",
		Adresse: "",
		Note:    "Le préavis de départ part de la réception de la lettre recommandée."},
	{ID: "syndic", Nom: "Syndic de copropriété", CategorieID: "logement", Type: "courrier",
		Adresse: ""},

	// Autres services
	{ID: "la-poste-reexpedition", Nom: "La Poste — Réexpédition", CategorieID: "autre", Type: "courrier", Populaire: true,
		Adresse: "La Poste\nService National des Réexpéditions\n33506 Libourne Cedex",
		Note:    "Souscrivez le contrat de réexpédition au moins 4 jours avant le déménagement."},
	{ID: "netflix", Nom: "Netflix", CategorieID: "autre", Type: "email",
		Email: ""},
	{ID: "amazon", Nom: "Amazon", CategorieID: "autre", Type: "email",
		Email: "",
		Note:  "Mettez à jour le carnet d'adresses de livraison depuis votre compte."},
}

// CategorieByID returns the category and whether it exists.
func CategorieByID(id string) (models.Categorie, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Categorie{}, false
}

// OrganismeByID returns the organization and whether it exists.
func OrganismeByID(id string) (models.Organisme, bool) {
	for _, o := range Organismes {
		if o.ID == id {
			return o, true
		}
	}
	return models.Organisme{}, false
}

// Populaires returns the quick-select subset.
func Populaires() []models.Organisme {
	var out []models.Organisme
	for _, o := range Organismes {
		if o.Populaire {
			out = append(out, o)
		}
	}
	return out
}
