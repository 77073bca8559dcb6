package manifest

import "github.com/eringen/urbandash/nav"

// Default returns the built-in manifest.
func Default() *Manifest {
	m, err := New(defaultPages()...)
	if err != nil {
		panic(err)
	}
	return m
}

func defaultPages() []Page {
	return []Page{
		{
			ID:    nav.AirQuality,
			Title: "🌬️ Análisis de Calidad del Aire (PM2.5)",
			Intro: "Explora los datos históricos y animaciones de la concentración de partículas PM2.5 en diferentes zonas.",
			Sections: []Section{
				{
					Title: "📍 Zona CA",
					Lead:  "Datos de PM2.5 para la Zona CA",
					Entries: []Entry{
						{
							Subsection:  "Mapa Histórico de PM2.5 (CA)",
							Path:        "CAH_PM25.png",
							Caption:     "Concentración Histórica de PM2.5 en la Zona CA",
							Description: "Ciclo diurno de usuarios que toman el Metro de Medellín como forma de transporte. La línea negra corresponde al promedio, mientras que el área gris corresponde al rango de variación definido a partir de más o menos una desviación estándar.",
						},
						{
							Subsection:  "Animación de Evolución de PM2.5 (CA)",
							Path:        "CA_PM25_animacion.gif",
							Caption:     "Evolución Temporal de PM2.5 en la Zona CA",
							Description: "Esta animación visualiza cómo han variado las concentraciones de PM2.5 en la Zona CA a lo largo del tiempo.",
						},
					},
				},
				{
					Title: "📍 Zona CD",
					Lead:  "Datos de PM2.5 para la Zona CD",
					Entries: []Entry{
						{
							Subsection:  "Mapa Histórico de PM2.5 (CD)",
							Path:        "CDH_PM25.png",
							Caption:     "Concentración Histórica de PM2.5 en la Zona CD",
							Description: "Ciclo diurno del material particulado PM2.5. La línea negra sólida corresponde al promedio de toda la red de ciudadanos científicos, mientras que las líneas grises corresponden a cada uno de los sensores de bajo costo que conforman la red de ciudadanos científicos.",
						},
						{
							Subsection:  "Animación de Evolución de PM2.5 (CD)",
							Path:        "CD_PM25_animacion.gif",
							Caption:     "Evolución Temporal de PM2.5 en la Zona CD",
							Description: "Observa la variación de las concentraciones de PM2.5 en la Zona CD a lo largo del tiempo a través de esta animación.",
						},
					},
				},
			},
		},
		{
			ID:    nav.MetroUsage,
			Title: "🚇 Análisis de Uso del Metro",
			Intro: "Visualización de los patrones de uso del sistema de transporte Metro.",
			Sections: []Section{
				{
					Entries: []Entry{
						{
							Subsection:  "Ciclo diurno de Usuarios del Metro",
							Path:        "CDH_Metro_users.png",
							Caption:     "Gráfico de Usuarios del Metro en la Zona CD",
							Description: "Ciclo diurno de usuarios que toman el Metro de Medellín como forma de transporte. La línea negra corresponde al promedio, mientras que el área gris corresponde al rango de variación definido a partir de más o menos una desviación estándar.",
						},
						{
							Subsection:  "Ciclo anual de usuarios del Metro",
							Path:        "CAH_metro_users.png",
							Caption:     "Histograma de Usuarios del Metro en la Zona CD",
							Description: "Ciclo anual de usuarios que toman el Metro de Medellín como forma de transporte. La línea negra sólida corresponde al promedio total, mientras que la línea verde corresponde al promedio removiendo los años de pandemia. Finalmente, las áreas grises y verdes corresponden al rango de variabilidad definido a partir de más o menos una desviación estándar.",
						},
					},
				},
			},
		},
		{
			ID:    nav.About,
			Title: "ℹ️ Acerca de este Dashboard",
			Intro: "Este dashboard ha sido creado para visualizar y explorar datos clave relacionados con la calidad del aire y el uso del transporte público en áreas urbanas.",
			Text: []TextBlock{
				{
					Heading: "Fuentes de Datos",
					Body: "- **Calidad del Aire (PM2.5):** Datos históricos de sensores de calidad del aire.\n" +
						"- **Uso del Metro:** Registros de afluencia de pasajeros del sistema de transporte Metro.\n",
				},
				{
					Heading: "Tecnologías Utilizadas",
					Body: "- **Go:** Servidor del dashboard (Echo y templ).\n" +
						"- **Librerías de visualización (ej: Matplotlib, Seaborn):** Generación de los gráficos y animaciones.\n",
				},
				{
					Heading: "Desarrolladores",
					Body: "- Alexis Ayala\n" +
						"- Sara Carvajal\n" +
						"- Juan Manuel Herrera\n" +
						"- Luis Díaz\n",
				},
				{
					Body: "Contacto: [s.carvajal@udea.edu.co](mailto:s.carvajal@udea.edu.co)",
				},
				{
					Body:    "Fecha de Creación: 2025-06-11",
					Divider: true,
				},
			},
		},
	}
}
