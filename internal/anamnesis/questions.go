// ABOUTME: Built-in EvolveYou anamnesis questionnaire.
// ABOUTME: 23 questions across five sections, with calculator roles and one conditional branch.
package anamnesis

import (
	"github.com/harperreed/anamnesis/internal/metabolic"
	"github.com/harperreed/anamnesis/internal/models"
)

// DefaultSchemaVersion identifies the built-in questionnaire.
const DefaultSchemaVersion = "evolveyou-1"

// Personal data field names read by the metabolic calculator.
const (
	FieldSex    = metabolic.FieldSex
	FieldAge    = metabolic.FieldAge
	FieldHeight = metabolic.FieldHeight
	FieldWeight = metabolic.FieldWeight
)

// Section labels.
const (
	sectionStart     = "O PONTO DE PARTIDA"
	sectionBasics    = "DADOS BÁSICOS"
	sectionRoutine   = "SUA ROTINA E METABOLISMO"
	sectionTraining  = "SEU HISTÓRICO, TREINO E PERFORMANCE"
	sectionSupplying = "SUPLEMENTAÇÃO E RECURSOS ERGOGÊNICOS"
	sectionFood      = "SEUS HÁBITOS E PREFERÊNCIAS ALIMENTARES"
)

var defaultSchema = &models.Schema{
	Version:   DefaultSchemaVersion,
	Questions: defaultQuestions(),
}

// DefaultSchema returns the built-in questionnaire. Callers must not mutate it.
func DefaultSchema() *models.Schema {
	return defaultSchema
}

func yesNo() []models.Option {
	return []models.Option{
		{Value: "nao", Label: "Não"},
		{Value: "sim", Label: "Sim"},
	}
}

func defaultQuestions() []models.Question {
	return []models.Question{
		// Part 1: starting point
		{
			ID:       1,
			Section:  sectionStart,
			Prompt:   "Qual é o seu principal objetivo neste momento?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Role:     models.RoleGoal,
			Options: []models.Option{
				{Value: string(models.GoalWeightLoss), Label: "Emagrecer e perder gordura corporal (preservar massa muscular)"},
				{Value: string(models.GoalMuscleGain), Label: "Ganhar massa muscular (hipertrofia)"},
				{Value: string(models.GoalPerformance), Label: "Melhorar minha saúde e condicionamento físico geral (performance)"},
				{Value: string(models.GoalMaintenance), Label: "Manter meu peso e composição corporal atuais (manutenção)"},
				{Value: string(models.GoalRehabilitation), Label: "Reabilitação, melhora postural"},
			},
		},
		{
			ID:       2,
			Section:  sectionStart,
			Prompt:   "Qual é a principal MOTIVAÇÃO por trás do seu objetivo? (Marque as principais)",
			Type:     models.QuestionMultipleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "saude", Label: "Melhorar minha saúde e bem-estar geral"},
				{Value: "autoestima", Label: "Aumentar minha autoestima e me sentir mais confiante"},
				{Value: "evento", Label: "Tenho um evento específico (viagem, casamento, formatura)"},
				{Value: "competicao", Label: "Performance para uma competição ou prova esportiva"},
				{Value: "avaliacao", Label: "Preparação para uma avaliação física (concurso, teste de emprego)"},
				{Value: "outro", Label: "Outro motivo", HasInput: true},
			},
		},
		{
			ID:       3,
			Section:  sectionStart,
			Prompt:   "Em quanto tempo você pretende alcançar este objetivo?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "curto", Label: "Curto Prazo: O mais rápido possível"},
				{Value: "medio", Label: "Médio Prazo: Tenho um bom tempo"},
				{Value: "longo", Label: "Longo Prazo: Sem pressa, focando na consistência"},
				{Value: "continuo", Label: "Contínuo: É um projeto de estilo de vida, sem um prazo final"},
			},
		},
		{
			ID:       4,
			Section:  sectionStart,
			Prompt:   "Para refinar, qual destas frases melhor descreve sua mentalidade?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "agressiva", Label: "Prefiro uma abordagem mais agressiva, mesmo que seja mais difícil"},
				{Value: "sustentavel", Label: "Prefiro uma abordagem mais lenta e sustentável, que se encaixe melhor na minha rotina"},
			},
		},
		{
			ID:       5,
			Section:  sectionBasics,
			Prompt:   "Seus dados básicos:",
			Type:     models.QuestionPersonalData,
			Required: true,
			Role:     models.RolePersonalData,
			Fields: []models.Field{
				{Name: FieldSex, Label: "Sexo Biológico", Type: models.FieldSelect, Required: true, Options: []string{"Masculino", "Feminino"}},
				{Name: FieldAge, Label: "Idade", Type: models.FieldNumber, Required: true, Placeholder: "anos"},
				{Name: FieldHeight, Label: "Altura", Type: models.FieldNumber, Required: true, Placeholder: "cm"},
				{Name: FieldWeight, Label: "Peso", Type: models.FieldNumber, Required: true, Placeholder: "kg"},
			},
		},

		// Part 2: routine and metabolism
		{
			ID:       6,
			Section:  sectionRoutine,
			Prompt:   "Como você descreveria seu corpo hoje, olhando no espelho?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Role:     models.RoleBodyComposition,
			Options: []models.Option{
				{Value: "muito_magro", Label: "Muito magro(a), com ossos e músculos bem visíveis"},
				{Value: "magro", Label: "Magro(a), com pouca gordura aparente e um visual 'seco'"},
				{Value: "atletico", Label: "Atlético(a), com músculos definidos e pouca gordura"},
				{Value: "normal", Label: "Normal ou mediano, com um pouco de gordura cobrindo os músculos"},
				{Value: "acima_peso", Label: "Acima do peso, com acúmulo de gordura notável na barriga, quadris ou outras áreas"},
			},
		},
		{
			ID:       7,
			Section:  sectionRoutine,
			Prompt:   "Qual opção melhor descreve sua principal atividade no TRABALHO ou ESTUDOS?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Role:     models.RoleOccupationalActivity,
			Options: []models.Option{
				{Value: "sedentario", Label: "Nível 1 - Sedentário: Passo a maior parte do tempo sentado(a)"},
				{Value: "leve", Label: "Nível 2 - Leve: Fico parte do tempo sentado(a), mas caminho um pouco ou fico em pé"},
				{Value: "moderado", Label: "Nível 3 - Moderado: Estou em constante movimento, caminhando bastante"},
				{Value: "intenso", Label: "Nível 4 - Intenso: Meu trabalho exige muito esforço físico e carregar pesos"},
			},
		},
		{
			ID:       8,
			Section:  sectionRoutine,
			Prompt:   "E no seu TEMPO LIVRE (fora do trabalho e dos treinos), você se considera uma pessoa:",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Role:     models.RoleLeisureActivity,
			Options: []models.Option{
				{Value: "tranquila", Label: "Nível 1 - Muito tranquila: atividades de baixo esforço (ler, ver TV)"},
				{Value: "leve_ativa", Label: "Nível 2 - Levemente ativa: tarefas domésticas leves e pequenas caminhadas"},
				{Value: "ativa", Label: "Nível 3 - Ativa: limpeza pesada, jardinagem, passeios longos"},
			},
		},

		// Part 3: history, training and performance
		{
			ID:       9,
			Section:  sectionTraining,
			Prompt:   "Qual seu nível de experiência com treinos de força (musculação, Crossfit)?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Role:     models.RoleTrainingExperience,
			Options: []models.Option{
				{Value: "iniciante", Label: "Iniciante: Nunca treinei ou treinei por menos de 6 meses"},
				{Value: "intermediario", Label: "Intermediário: Treino de forma consistente há mais de 6 meses a 2 anos"},
				{Value: "avancado", Label: "Avançado: Treino de forma séria e consistente há vários anos"},
			},
		},
		{
			ID:       10,
			Section:  sectionTraining,
			Prompt:   "Onde você pretende treinar?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "casa_sem_equip", Label: "Em casa, com pouco ou nenhum equipamento"},
				{Value: "casa_com_equip", Label: "Em casa, com alguns equipamentos (halteres, elásticos)"},
				{Value: "academia_basica", Label: "Em uma academia com equipamentos básicos"},
				{Value: "academia_completa", Label: "Em uma academia completa"},
				{Value: "crossfit", Label: "Em um Box de Crossfit"},
			},
		},
		{
			ID:       11,
			Section:  sectionTraining,
			Prompt:   "Quantos dias na semana você REALMENTE tem disponibilidade para treinar?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "2", Label: "2 dias"},
				{Value: "3", Label: "3 dias"},
				{Value: "4", Label: "4 dias"},
				{Value: "5", Label: "5 dias"},
				{Value: "6", Label: "6 dias"},
			},
		},
		{
			ID:       12,
			Section:  sectionTraining,
			Prompt:   "Qual(is) atividade(s) você pratica ou gostaria de praticar? (Marque as principais)",
			Type:     models.QuestionMultipleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "musculacao", Label: "Musculação / Treinamento de Força"},
				{Value: "crossfit", Label: "Crossfit / Treinamento Funcional"},
				{Value: "corrida", Label: "Corrida / Caminhada"},
				{Value: "esportes_coletivos", Label: "Futebol / Vôlei / Basquete"},
				{Value: "raquete", Label: "Beach Tennis / Tênis / Padel"},
				{Value: "ciclismo", Label: "Ciclismo / Bike"},
				{Value: "natacao", Label: "Natação / Hidroginástica"},
				{Value: "lutas", Label: "Lutas (Jiu-Jitsu, Boxe, etc.)"},
				{Value: "danca_yoga", Label: "Dança / Yoga / Pilates"},
				{Value: "outra", Label: "Outra", HasInput: true},
			},
		},
		{
			ID:       13,
			Section:  sectionTraining,
			Prompt:   "Em uma escala de 0 a 10, qual a intensidade média do seu esforço nos treinos?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "3-4", Label: "3-4 (Leve): Consigo conversar normalmente"},
				{Value: "5-6", Label: "5-6 (Moderado): Conversar se torna um desafio"},
				{Value: "7-8", Label: "7-8 (Intenso): Só consigo falar frases curtas"},
				{Value: "9-10", Label: "9-10 (Muito Intenso): Falar é quase impossível, esforço máximo"},
			},
		},
		{
			ID:       14,
			Section:  sectionTraining,
			Prompt:   "Você sente alguma dor, desconforto ou tem alguma lesão ativa ou recorrente?",
			Type:     models.QuestionTextWithOption,
			Required: true,
			Options: []models.Option{
				{Value: "nao", Label: "Não"},
				{Value: "sim", Label: "Sim. Descreva:", HasInput: true},
			},
		},

		// Part 4: supplements and ergogenic aids
		{
			ID:       15,
			Section:  sectionSupplying,
			Prompt:   "Você faz uso ou pretende fazer uso de suplementos alimentares?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options:  yesNo(),
		},
		{
			ID:          16,
			Section:     sectionSupplying,
			Prompt:      "Se sim, quais você utiliza ou tem interesse? (Marque todos que se aplicam)",
			Type:        models.QuestionMultipleChoice,
			Required:    false,
			Conditional: &models.Conditional{DependsOn: 15, RequiredValue: "sim"},
			Options:     supplementOptions(),
		},
		{
			ID:       17,
			Section:  sectionSupplying,
			Prompt:   "Você faz uso de algum recurso ergogênico farmacológico (hormônios/esteroides)?",
			Subtitle: "(Esta informação é confidencial e crucial para a segurança e eficácia do seu plano)",
			Type:     models.QuestionPharmaUsage,
			Required: true,
			Role:     models.RolePharmaUsage,
			Options:  yesNo(),
			Fields: []models.Field{
				{Name: "nome", Label: "Nome do Recurso", Type: models.FieldText, Placeholder: "ex: Testosterona"},
				{Name: "dosagem", Label: "Dosagem", Type: models.FieldText, Placeholder: "ex: 200mg"},
				{Name: "frequencia", Label: "Frequência", Type: models.FieldText, Placeholder: "ex: uma vez por semana"},
			},
		},

		// Part 5: eating habits and preferences
		{
			ID:       18,
			Section:  sectionFood,
			Prompt:   "Quantas refeições você costuma fazer por dia?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "1-2", Label: "1 a 2 refeições grandes"},
				{Value: "3", Label: "3 refeições principais (café, almoço, jantar)"},
				{Value: "4-5", Label: "4 a 5 refeições (as 3 principais + lanches)"},
				{Value: "6+", Label: "6 ou mais refeições pequenas ao longo do dia"},
			},
		},
		{
			ID:       19,
			Section:  sectionFood,
			Prompt:   "Marque as fontes de PROTEÍNA que você mais gosta e costuma comer:",
			Type:     models.QuestionMultipleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "frango", Label: "Frango"},
				{Value: "carne_vermelha", Label: "Carne vermelha (bovina, suína)"},
				{Value: "peixes", Label: "Peixes (tilápia, salmão)"},
				{Value: "ovos", Label: "Ovos"},
				{Value: "laticinios", Label: "Laticínios (iogurte, queijos)"},
				{Value: "proteinas_po", Label: "Proteínas em pó (Whey, Albumina)"},
				{Value: "proteinas_vegetais", Label: "Proteínas vegetais (lentilha, grão-de-bico, tofu, soja)"},
			},
		},
		{
			ID:       20,
			Section:  sectionFood,
			Prompt:   "Marque as fontes de CARBOIDRATO que você mais gosta e costuma comer:",
			Type:     models.QuestionMultipleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "arroz", Label: "Arroz branco / integral"},
				{Value: "batatas", Label: "Batatas (inglesa, doce) / Mandioca"},
				{Value: "massas", Label: "Massas / Pães"},
				{Value: "aveia", Label: "Aveia"},
				{Value: "frutas", Label: "Frutas em geral"},
				{Value: "legumes", Label: "Legumes e verduras"},
			},
		},
		{
			ID:       21,
			Section:  sectionFood,
			Prompt:   "Você possui alguma alergia, intolerância ou restrição alimentar severa?",
			Type:     models.QuestionTextWithOption,
			Required: true,
			Options: []models.Option{
				{Value: "nao", Label: "Não"},
				{Value: "lactose", Label: "Sim, a lactose"},
				{Value: "gluten", Label: "Sim, ao glúten (Celíaco ou sensibilidade)"},
				{Value: "outros", Label: "Sim, a outros alimentos. Quais?", HasInput: true},
			},
		},
		{
			ID:       22,
			Section:  sectionFood,
			Prompt:   "Quanta água você bebe por dia?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "quase_nada", Label: "Quase não bebo água, mais sucos e refrigerantes"},
				{Value: "1-2_copos", Label: "1 a 2 copos (menos de 1 litro)"},
				{Value: "3-5_copos", Label: "3 a 5 copos (cerca de 1,5 litros)"},
				{Value: "6+_copos", Label: "Mais de 6 copos (mais de 2 litros)"},
			},
		},
		{
			ID:       23,
			Section:  sectionFood,
			Prompt:   "Como é sua alimentação nos fins de semana?",
			Type:     models.QuestionSingleChoice,
			Required: true,
			Options: []models.Option{
				{Value: "mesmo_padrao", Label: "Mantenho o mesmo padrão da semana"},
				{Value: "1-2_livres", Label: "Faço de 1 a 2 'refeições livres' (pizza, lanche, etc)"},
				{Value: "muito_diferente", Label: "É bem diferente, com muito mais 'escapadas' da dieta"},
			},
		},
	}
}

func supplementOptions() []models.Option {
	const (
		macros  = "MACRONUTRIENTES (para complementar a dieta)"
		perf    = "PERFORMANCE E FORÇA"
		welfare = "SAÚDE E BEM-ESTAR (micronutrientes e outros)"
	)
	return []models.Option{
		{Value: "proteina_po", Label: "Proteína em Pó (Whey Protein, Caseína, Albumina, Proteína Vegana)", Category: macros},
		{Value: "hipercalorico", Label: "Hipercalórico / Massa", Category: macros},
		{Value: "carboidratos_po", Label: "Carboidratos em Pó (Maltodextrina, Dextrose, Waxy Maize)", Category: macros},
		{Value: "creatina", Label: "Creatina", Category: perf},
		{Value: "beta_alanina", Label: "Beta-Alanina", Category: perf},
		{Value: "cafeina", Label: "Cafeína (cápsulas ou como pré-treino)", Category: perf},
		{Value: "citrulina", Label: "Citrulina / Arginina", Category: perf},
		{Value: "multivitaminico", Label: "Multivitamínico", Category: welfare},
		{Value: "vitamina_d", Label: "Vitamina D", Category: welfare},
		{Value: "omega_3", Label: "Ômega 3", Category: welfare},
		{Value: "coenzima_q10", Label: "Coenzima Q10", Category: welfare},
		{Value: "melatonina", Label: "Melatonina / Indutores de sono", Category: welfare},
		{Value: "outros", Label: "Outros", HasInput: true, Category: welfare},
	}
}
