package content

import "encoding/json"

// DefaultContent returns the built-in site document. A fresh install renders
// this copy until the operator edits something; reset restores it wholesale.
func DefaultContent() Content {
	return Content{
		Theme: Theme{
			Primary:    "#D4AF37",
			Background: "#0F0F10",
			Secondary:  "#8A2BE2",
		},
		Hero: Section{
			Fields: map[string]string{
				"subtitle":    "Drop Imersivo",
				"title":       "H&R GRIFES",
				"description": `"Moda que te envolve"`,
				"buttonText":  "Descobrir",
			},
		},
		Marquee: Section{
			Fields: map[string]string{
				"brandName": "H&R GRIFES",
				"text1":     "Drop Imersivo",
				"text2":     "Moda que te envolve",
				"year":      "2025",
			},
		},
		Story: Section{
			Fields: map[string]string{
				"titlePrefix":    "A",
				"titleHighlight": "Narrativa",
				"description":    "Explore os elementos que definem nossa coleção mais recente. Cada fio tem um propósito, cada corte conta uma história.",
			},
			Items: []Item{
				{
					ID:          "1",
					Title:       "Narrativa Textural",
					Category:    "Materiais",
					Subtitle:    "Tecido Silk-flow com microplissados.",
					Image:       "https://images.unsplash.com/photo-1528459061998-56fd57ad86e3?q=80&w=1000&auto=format&fit=crop",
					Description: "Nossos tecidos são escolhidos para contar uma história de resiliência e elegância. Esta temporada apresenta seda tecnológica reciclada que se move como metal líquido.",
				},
				{
					ID:          "2",
					Title:       "Cortes Arquitetônicos",
					Category:    "Silhueta",
					Subtitle:    "Ombros estruturados encontrando drapeados fluidos.",
					Image:       "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?q=80&w=1000&auto=format&fit=crop",
					Description: "O corpo é a tela. Usamos alfaiataria arquitetônica afiada para emoldurar a forma humana, criando silhuetas de poder para a era moderna.",
				},
				{
					ID:          "3",
					Title:       "Cor Viva",
					Category:    "Paleta",
					Subtitle:    "Violetas Profundos e Ouro Polido.",
					Image:       "https://images.unsplash.com/photo-1550614000-4b9519e02a15?q=80&w=1000&auto=format&fit=crop",
					Description: "Cores que respiram. Nossa paleta é inspirada na transição do crepúsculo para a noite elétrica da cidade.",
				},
			},
		},
		Lookbook: Section{
			Fields: map[string]string{
				"label":       "Lookbook 2025",
				"titleLine1":  "Elegância",
				"titleLine2":  "Urbana",
				"description": "H&R GRIFES traz uma coleção desenhada para os holofotes. Da sala de reuniões à abertura da galeria, estas peças adaptam-se à sua narrativa.",
			},
			Extra: map[string]json.RawMessage{
				"features": json.RawMessage(`[{"title":"Seda Sustentável","desc":"Fonte ética, incrivelmente macia."},{"title":"Ajuste Sob Medida","desc":"Serviços sob medida disponíveis."}]`),
			},
			Items: []Item{
				{
					ID:          "4",
					Title:       "O Blazer Noir",
					Category:    "Look 01",
					Subtitle:    "Caimento oversized com detalhes em metais dourados.",
					Image:       "https://images.unsplash.com/photo-1539008835657-9e8e9680c956?q=80&w=1000&auto=format&fit=crop",
					Description: "Uma peça essencial redefinida. O Blazer Noir apresenta ombro caído e botões de fecho dourados assinatura H&R.",
				},
				{
					ID:          "5",
					Title:       "Vestido Etéreo",
					Category:    "Look 02",
					Subtitle:    "Camadas translúcidas com fio metálico.",
					Image:       "https://images.unsplash.com/photo-1566174053879-31528523f8ae?q=80&w=1000&auto=format&fit=crop",
					Description: "Para os momentos que importam. Este vestido captura cada fóton de luz, criando uma aura pessoal de brilho.",
				},
				{
					ID:          "6",
					Title:       "Urban Shell",
					Category:    "Look 03",
					Subtitle:    "Casaco resistente à água em violeta fosco.",
					Image:       "https://images.unsplash.com/photo-1529139574466-a302d2052574?q=80&w=1000&auto=format&fit=crop",
					Description: "Função encontra alta moda. O Urban Shell é projetado para o andarilho da cidade que se recusa a comprometer o estilo.",
				},
			},
		},
		RSVP: Section{
			Fields: map[string]string{
				"label":          "Lista de Convidados",
				"title":          "Garanta Seu Acesso",
				"description":    "Junte-se a nós para a revelação imersiva. Capacidade limitada disponível para esta experiência exclusiva.",
				"successTitle":   "Você está na lista.",
				"successMessage": "Enviamos uma confirmação para o seu e-mail.",
			},
		},
	}
}
