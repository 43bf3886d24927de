package services

import "github.com/custodia-labs/sitesmith/internal/core/domain"

// BuiltinCatalog returns the block catalog used when no remote catalog is
// available. Every type of the closed set has an entry.
func BuiltinCatalog() []domain.BlockTypeDefinition {
	return []domain.BlockTypeDefinition{
		{
			Type:        domain.BlockNavigation,
			Name:        "Navigation",
			Description: "Barre de navigation avec logo et liens",
			Category:    domain.CategoryNavigation,
			Icon:        "🧭",
			DefaultProperties: map[string]any{
				"logo":        "",
				"items":       []any{},
				"buttonLabel": "",
			},
			EditableFields: []domain.FieldDefinition{
				textField("logo", "Logo", "Content", false),
				textField("buttonLabel", "Texte du bouton", "Content", false),
			},
		},
		{
			Type:        domain.BlockHero,
			Name:        "Bannière",
			Description: "Grande image d'en-tête pouvant contenir une invitation",
			Category:    domain.CategoryMedia,
			Icon:        "🌅",
			DefaultProperties: map[string]any{
				"backgroundImage": "",
				"overlay":         map[string]any{"color": "rgba(0,0,0,0.3)", "blur": false},
				"minHeight":       "700px",
			},
			EditableFields: []domain.FieldDefinition{
				{Name: "backgroundImage", Label: "Image de fond", Kind: domain.FieldImage, Section: "Content", Required: true},
				textField("minHeight", "Hauteur minimale", "Style", false),
			},
			CanHaveChildren: true,
		},
		{
			Type:        domain.BlockInvitationCard,
			Name:        "Carte d'invitation",
			Description: "Noms du couple, date et texte d'invitation",
			Category:    domain.CategoryContent,
			Icon:        "💌",
			DefaultProperties: map[string]any{
				"name":            "",
				"date":            "",
				"subtitle":        "",
				"backgroundColor": "#ffffff",
				"opacity":         0.95,
			},
			EditableFields: []domain.FieldDefinition{
				textField("name", "Noms", "Content", true),
				{Name: "date", Label: "Date", Kind: domain.FieldDate, Section: "Content", Required: true},
				{Name: "subtitle", Label: "Texte d'invitation", Kind: domain.FieldTextarea, Section: "Content"},
				textField("backgroundColor", "Couleur de fond", "Style", false),
			},
		},
		{
			Type:        domain.BlockCountdown,
			Name:        "Compte à rebours",
			Description: "Décompte jusqu'au jour J",
			Category:    domain.CategoryContent,
			Icon:        "⏳",
			DefaultProperties: map[string]any{
				"date": "",
				"labels": map[string]any{
					"days":    "Jours",
					"hours":   "Heures",
					"minutes": "Minutes",
					"seconds": "Secondes",
				},
			},
			EditableFields: []domain.FieldDefinition{
				{Name: "date", Label: "Date", Kind: domain.FieldDate, Section: "Content", Required: true},
			},
		},
		{
			Type:        domain.BlockCoupleSection,
			Name:        "Section Couple",
			Description: "Présentation des mariés",
			Category:    domain.CategoryContent,
			Icon:        "💑",
			DefaultProperties: map[string]any{
				"title":           "Notre Histoire",
				"subtitle":        "",
				"backgroundColor": "#f9f9f9",
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", true),
				textField("subtitle", "Sous-titre", "Content", false),
				textField("backgroundColor", "Couleur de fond", "Style", false),
			},
			CanHaveChildren: true,
		},
		{
			Type:        domain.BlockPersonBio,
			Name:        "Biographie",
			Description: "Photo et biographie d'une personne",
			Category:    domain.CategoryContent,
			Icon:        "👤",
			DefaultProperties: map[string]any{
				"name":          "",
				"role":          "",
				"image":         defaultAvatar,
				"bio":           "",
				"borderColor":   "#D4AF37",
				"imagePosition": "left",
			},
			EditableFields: []domain.FieldDefinition{
				textField("name", "Nom", "Content", true),
				textField("role", "Rôle", "Content", false),
				{Name: "image", Label: "Photo", Kind: domain.FieldImage, Section: "Content"},
				{Name: "bio", Label: "Biographie", Kind: domain.FieldTextarea, Section: "Content"},
			},
		},
		{
			Type:        domain.BlockFAQSection,
			Name:        "Section FAQ",
			Description: "Questions fréquentes en accordéon",
			Category:    domain.CategoryContent,
			Icon:        "❓",
			DefaultProperties: map[string]any{
				"title":    "Questions Fréquentes",
				"subtitle": "",
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", true),
				textField("subtitle", "Sous-titre", "Content", false),
			},
			CanHaveChildren: true,
		},
		{
			Type:        domain.BlockAccordionItem,
			Name:        "Question",
			Description: "Une question et sa réponse",
			Category:    domain.CategoryContent,
			Icon:        "💬",
			DefaultProperties: map[string]any{
				"question": "",
				"answer":   "",
				"open":     false,
			},
			EditableFields: []domain.FieldDefinition{
				textField("question", "Question", "Content", true),
				{Name: "answer", Label: "Réponse", Kind: domain.FieldTextarea, Section: "Content", Required: true},
			},
		},
		{
			Type:        domain.BlockRSVPForm,
			Name:        "Formulaire RSVP",
			Description: "Confirmation de présence des invités",
			Category:    domain.CategoryForm,
			Icon:        "✉️",
			DefaultProperties: map[string]any{
				"title": "Confirmez votre Présence",
				"fields": []any{
					map[string]any{"name": "name", "label": "Nom Complet", "type": "text", "required": true},
					map[string]any{"name": "email", "label": "Email", "type": "email", "required": true},
					map[string]any{"name": "guests", "label": "Nombre d'invités", "type": "number", "required": true},
					map[string]any{"name": "message", "label": "Message", "type": "textarea", "required": false},
				},
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", true),
				{Name: "fields", Label: "Champs", Kind: domain.FieldRSVPFields, Section: "Form", Required: true},
			},
			RequiresConfig: true,
		},
		{
			Type:        domain.BlockTextSection,
			Name:        "Section Texte",
			Description: "Une section avec titre et contenu texte",
			Category:    domain.CategoryContent,
			Icon:        "📝",
			DefaultProperties: map[string]any{
				"title":           "Titre de la section",
				"content":         "Contenu de la section...",
				"alignment":       "left",
				"backgroundColor": "#ffffff",
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", false),
				{Name: "content", Label: "Contenu", Kind: domain.FieldTextarea, Section: "Content", Required: true},
				textField("alignment", "Alignement", "Style", false),
				textField("backgroundColor", "Couleur de fond", "Style", false),
			},
		},
		{
			Type:        domain.BlockFormCustom,
			Name:        "Formulaire Personnalisé",
			Description: "Un formulaire avec champs customisables",
			Category:    domain.CategoryForm,
			Icon:        "📋",
			DefaultProperties: map[string]any{
				"title":          "Formulaire",
				"successMessage": "Merci ! Votre réponse a été enregistrée.",
				"submitEndpoint": "/api/form-submission",
				"fields":         []any{},
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", true),
				{Name: "successMessage", Label: "Message de succès", Kind: domain.FieldTextarea, Section: "Content"},
				{Name: "fields", Label: "Champs", Kind: domain.FieldList, Section: "Form", Required: true},
			},
			RequiresConfig: true,
		},
		{
			Type:        domain.BlockFAQCustom,
			Name:        "FAQ Personnalisée",
			Description: "FAQ avec questions/réponses customisables",
			Category:    domain.CategoryContent,
			Icon:        "❔",
			DefaultProperties: map[string]any{
				"title":    "Questions Fréquentes",
				"subtitle": "Trouvez les réponses à vos questions",
				"items":    []any{},
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", true),
				textField("subtitle", "Sous-titre", "Content", false),
				{Name: "items", Label: "Questions/Réponses", Kind: domain.FieldList, Section: "Content", Required: true},
			},
			RequiresConfig: true,
		},
		{
			Type:        domain.BlockGallery,
			Name:        "Galerie",
			Description: "Galerie d'images",
			Category:    domain.CategoryMedia,
			Icon:        "🖼️",
			DefaultProperties: map[string]any{
				"title":  "Galerie",
				"layout": "grid",
				"images": []any{},
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", false),
				textField("layout", "Layout", "Style", false),
				{Name: "images", Label: "Images", Kind: domain.FieldList, Section: "Content", Required: true},
			},
			RequiresConfig: true,
		},
		{
			Type:        domain.BlockTestimonial,
			Name:        "Témoignages",
			Description: "Mots des proches",
			Category:    domain.CategorySocial,
			Icon:        "🗨️",
			DefaultProperties: map[string]any{
				"title":        "Ils parlent de nous",
				"testimonials": []any{},
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", false),
				{Name: "testimonials", Label: "Témoignages", Kind: domain.FieldList, Section: "Content", Required: true},
			},
			RequiresConfig: true,
		},
		{
			Type:        domain.BlockSchedule,
			Name:        "Programme / Timeline",
			Description: "Programme avec horaires",
			Category:    domain.CategoryContent,
			Icon:        "📅",
			DefaultProperties: map[string]any{
				"title":  "Programme du Jour",
				"events": []any{},
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", true),
				{Name: "events", Label: "Événements", Kind: domain.FieldList, Section: "Content", Required: true},
			},
			RequiresConfig: true,
		},
		{
			Type:        domain.BlockGuestList,
			Name:        "Liste des invités",
			Description: "Invités et tables",
			Category:    domain.CategorySocial,
			Icon:        "👥",
			DefaultProperties: map[string]any{
				"title":  "Nos Invités",
				"guests": []any{},
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", false),
				{Name: "guests", Label: "Invités", Kind: domain.FieldList, Section: "Content", Required: true},
			},
			RequiresConfig: true,
		},
		{
			Type:        domain.BlockButton,
			Name:        "Bouton",
			Description: "Bouton d'action avec navigation",
			Category:    domain.CategoryNavigation,
			Icon:        "🔘",
			DefaultProperties: map[string]any{
				"text":            "Cliquez ici",
				"action":          "navigate",
				"linkedPageId":    nil,
				"backgroundColor": "#2196f3",
				"textColor":       "#ffffff",
			},
			EditableFields: []domain.FieldDefinition{
				textField("text", "Texte", "Content", true),
				textField("action", "Action", "Behavior", true),
				textField("linkedPageId", "Page liée", "Behavior", false),
				textField("backgroundColor", "Couleur de fond", "Style", false),
				textField("textColor", "Couleur du texte", "Style", false),
			},
		},
		{
			Type:        domain.BlockDivider,
			Name:        "Séparateur",
			Description: "Ligne de séparation",
			Category:    domain.CategoryLayout,
			Icon:        "➖",
			DefaultProperties: map[string]any{
				"height":       "2px",
				"color":        "#e0e0e0",
				"marginTop":    "2rem",
				"marginBottom": "2rem",
			},
			EditableFields: []domain.FieldDefinition{
				textField("height", "Hauteur", "Style", false),
				textField("color", "Couleur", "Style", false),
			},
		},
		{
			Type:        domain.BlockContactForm,
			Name:        "Contact",
			Description: "Coordonnées et formulaire de contact",
			Category:    domain.CategoryForm,
			Icon:        "☎️",
			DefaultProperties: map[string]any{
				"title": "Contactez-nous",
				"email": "",
				"phone": "",
			},
			EditableFields: []domain.FieldDefinition{
				textField("title", "Titre", "Content", false),
				{Name: "email", Label: "Email", Kind: domain.FieldEmail, Section: "Content", Required: true},
				{Name: "phone", Label: "Téléphone", Kind: domain.FieldTel, Section: "Content"},
			},
		},
	}
}

const defaultAvatar = "/assets/default-avatar.jpg"

func textField(name, label, section string, required bool) domain.FieldDefinition {
	return domain.FieldDefinition{
		Name:     name,
		Label:    label,
		Kind:     domain.FieldText,
		Section:  section,
		Required: required,
	}
}
